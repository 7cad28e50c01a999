package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/edp1096/toy-powerflow/internal/consts"
)

type Status int

const (
	NotConverged Status = iota
	Converged
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case NotConverged:
		return "not converged"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the solved (or last) voltage state, in bus order.
type Result struct {
	Status       Status       `yaml:"status"`
	Iterations   int          `yaml:"iterations"`    // Newton updates applied
	MismatchNorm float64      `yaml:"mismatch_norm"` // At the returned iterate
	History      []float64    `yaml:"history"`       // Norm before each update, then the final one
	Vm           []float64    `yaml:"vm"`
	Va           []float64    `yaml:"va"` // Degrees
	P            []float64    `yaml:"p"`  // Calculated net injection at the returned iterate
	Q            []float64    `yaml:"q"`
	V            []complex128 `yaml:"-"`
}

func (r *Result) Converged() bool {
	return r.Status == Converged
}

func newResult(v []complex128, m *Mismatch) *Result {
	r := &Result{
		Vm: make([]float64, len(v)),
		Va: make([]float64, len(v)),
		P:  m.P,
		Q:  m.Q,
		V:  append([]complex128(nil), v...),
	}
	for i, vi := range v {
		r.Vm[i] = cmplx.Abs(vi)
		r.Va[i] = cmplx.Phase(vi) * consts.RadToDeg
	}
	return r
}
