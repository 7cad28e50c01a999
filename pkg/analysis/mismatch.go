package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-powerflow/pkg/matrix"
)

// Mismatch holds the calculated injections and their residuals per bus.
type Mismatch struct {
	P, Q   []float64 // Calculated net injection
	DP, DQ []float64 // Specified minus calculated
}

// Mismatches evaluates S_i = V_i * conj((Y*V)_i) and compares it with the
// specified injections pd, qd.
func Mismatches(v []complex128, y *matrix.Admittance, pd, qd []float64) (*Mismatch, error) {
	if len(pd) != len(v) || len(qd) != len(v) {
		return nil, fmt.Errorf("%w: %d voltages, %d pd, %d qd", ErrDimensionMismatch, len(v), len(pd), len(qd))
	}

	current, err := y.Mul(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}

	n := len(v)
	m := &Mismatch{
		P:  make([]float64, n),
		Q:  make([]float64, n),
		DP: make([]float64, n),
		DQ: make([]float64, n),
	}
	for i := range v {
		s := v[i] * cmplx.Conj(current[i])
		m.P[i], m.Q[i] = real(s), imag(s)
		m.DP[i] = pd[i] - m.P[i]
		m.DQ[i] = qd[i] - m.Q[i]
	}

	return m, nil
}

// Select returns the residual vector in unknown order: an angle unknown
// picks ΔP of its bus, a magnitude unknown ΔQ.
func (m *Mismatch) Select(unknowns []Unknown) []float64 {
	f := make([]float64, len(unknowns))
	for r, u := range unknowns {
		if u.Quantity == Magnitude {
			f[r] = m.DQ[u.Bus]
		} else {
			f[r] = m.DP[u.Bus]
		}
	}
	return f
}

func Norm(x []float64) float64 {
	var sum float64
	for _, xi := range x {
		sum += xi * xi
	}
	return math.Sqrt(sum)
}
