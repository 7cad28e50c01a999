package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"go.uber.org/zap"

	"github.com/edp1096/toy-powerflow/internal/consts"
	"github.com/edp1096/toy-powerflow/pkg/matrix"
	"github.com/edp1096/toy-powerflow/pkg/network"
)

// solver owns the state of a single Solve call.
type solver struct {
	opts     Options
	log      *zap.Logger
	y        *matrix.Admittance
	v        []complex128
	pd, qd   []float64
	unknowns []Unknown
}

// Solve runs Newton-Raphson from a flat start. Non-convergence is reported
// through Result.Status; only malformed input, invalid options and a singular
// Jacobian are errors (plus ErrNotConverged when opts.Strict is set).
func Solve(net *network.Network, opts Options) (*Result, error) {
	if net == nil {
		return nil, ErrNotSetup
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}

	s, err := newSolver(net, opts)
	if err != nil {
		return nil, err
	}
	return s.run()
}

func newSolver(net *network.Network, opts Options) (*solver, error) {
	y, err := net.Admittance()
	if err != nil {
		return nil, fmt.Errorf("building admittance matrix: %w", err)
	}

	s := &solver{
		opts:     opts,
		log:      opts.logger().With(zap.String("network", net.Name)),
		y:        y,
		v:        make([]complex128, net.NumBuses()),
		unknowns: ActiveUnknowns(net.BusTypes()),
	}
	s.pd, s.qd = net.Injections()

	for i, bus := range net.Buses {
		switch bus.Type {
		case network.PV:
			s.v[i] = complex(math.Abs(bus.Vm), 0)
		case network.Slack:
			s.v[i] = cmplx.Rect(bus.Vm, bus.Va*consts.DegToRad)
		default:
			s.v[i] = 1
		}
	}

	return s, nil
}

func (s *solver) run() (*Result, error) {
	var history []float64

	for iter := 0; ; iter++ {
		mis, err := Mismatches(s.v, s.y, s.pd, s.qd)
		if err != nil {
			return nil, err
		}
		f := mis.Select(s.unknowns)
		norm := Norm(f)
		history = append(history, norm)

		s.log.Debug("newton iteration", zap.Int("iteration", iter), zap.Float64("mismatch_norm", norm))

		if norm < s.opts.Tolerance {
			s.log.Info("power flow converged", zap.Int("iterations", iter), zap.Float64("mismatch_norm", norm))
			return s.finish(mis, Converged, iter, norm, history), nil
		}
		if iter == s.opts.MaxIterations {
			s.log.Warn("power flow did not converge",
				zap.Int("max_iterations", s.opts.MaxIterations),
				zap.Float64("mismatch_norm", norm))
			r := s.finish(mis, NotConverged, iter, norm, history)
			if s.opts.Strict {
				return r, fmt.Errorf("%w after %d iterations (mismatch %g)", ErrNotConverged, iter, norm)
			}
			return r, nil
		}

		dx, err := s.correction(f)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		s.apply(dx)
	}
}

// correction solves J_reduced * dx = f.
func (s *solver) correction(f []float64) ([]float64, error) {
	jac, err := BuildJacobian(s.v, s.y, s.opts.Jacobian)
	if err != nil {
		return nil, err
	}

	sys, err := jac.Reduce(s.unknowns)
	if err != nil {
		return nil, err
	}
	defer sys.Destroy()

	if sys.Size != len(f) {
		return nil, fmt.Errorf("%w: jacobian %d, mismatch %d", ErrDimensionMismatch, sys.Size, len(f))
	}
	for r, fr := range f {
		if err := sys.AddRHS(r, fr); err != nil {
			return nil, err
		}
	}

	if err := sys.Solve(); err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("%w: %v", ErrSingularJacobian, err)
		}
		return nil, err
	}

	return sys.Solution(), nil
}

// apply walks the unknowns in order. The magnitude step of a PQ bus uses
// the angle already corrected in the same pass.
func (s *solver) apply(dx []float64) {
	for r, u := range s.unknowns {
		switch u.Quantity {
		case Angle:
			s.v[u.Bus] *= cmplx.Rect(1, dx[r])
		case Magnitude:
			vi := s.v[u.Bus]
			s.v[u.Bus] = cmplx.Rect(cmplx.Abs(vi)+dx[r], cmplx.Phase(vi))
		}
	}
}

func (s *solver) finish(mis *Mismatch, status Status, iter int, norm float64, history []float64) *Result {
	r := newResult(s.v, mis)
	r.Status = status
	r.Iterations = iter
	r.MismatchNorm = norm
	r.History = history
	return r
}
