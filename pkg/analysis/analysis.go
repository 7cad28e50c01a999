package analysis

import (
	"fmt"

	"github.com/edp1096/toy-powerflow/pkg/network"
)

type Analysis interface {
	Setup(net *network.Network) error
	Execute() error
	GetResults() map[string][]float64
}

type BaseAnalysis struct {
	Network *network.Network
	Options Options
	results map[string][]float64 // key: quantity name, value: per-iteration or single value
}

func NewBaseAnalysis(opts Options) *BaseAnalysis {
	return &BaseAnalysis{
		Options: opts,
		results: make(map[string][]float64),
	}
}

// StoreBusResults records per-bus quantities under 1-based bus numbers,
// e.g. "VM(2)", "VA(2)", "P(2)", "Q(2)".
func (a *BaseAnalysis) StoreBusResults(r *Result) {
	for i := range r.Vm {
		bus := i + 1
		a.results[fmt.Sprintf("VM(%d)", bus)] = []float64{r.Vm[i]}
		a.results[fmt.Sprintf("VA(%d)", bus)] = []float64{r.Va[i]}
		a.results[fmt.Sprintf("P(%d)", bus)] = []float64{r.P[i]}
		a.results[fmt.Sprintf("Q(%d)", bus)] = []float64{r.Q[i]}
	}

	a.results["ITER"] = []float64{float64(r.Iterations)}
	a.results["MISMATCH"] = append([]float64(nil), r.History...)

	converged := 0.0
	if r.Converged() {
		converged = 1
	}
	a.results["CONVERGED"] = []float64{converged}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}

// LoadFlow wraps Solve as an Analysis.
type LoadFlow struct {
	BaseAnalysis
	result *Result
}

func NewLoadFlow(opts Options) *LoadFlow {
	return &LoadFlow{
		BaseAnalysis: *NewBaseAnalysis(opts),
	}
}

func (lf *LoadFlow) Setup(net *network.Network) error {
	if net == nil {
		return ErrNotSetup
	}
	if err := lf.Options.Validate(); err != nil {
		return err
	}
	if err := net.Validate(); err != nil {
		return fmt.Errorf("invalid network %q: %w", net.Name, err)
	}
	lf.Network = net
	return nil
}

func (lf *LoadFlow) Execute() error {
	if lf.Network == nil {
		return ErrNotSetup
	}

	r, err := Solve(lf.Network, lf.Options)
	if r != nil {
		lf.result = r
		lf.StoreBusResults(r)
	}
	if err != nil {
		return fmt.Errorf("load flow %q: %w", lf.Network.Name, err)
	}
	return nil
}

// Result returns the last Execute outcome, or nil.
func (lf *LoadFlow) Result() *Result {
	return lf.result
}
