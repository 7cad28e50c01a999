package analysis_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-powerflow/pkg/analysis"
	"github.com/edp1096/toy-powerflow/pkg/cases"
	"github.com/edp1096/toy-powerflow/pkg/matrix"
	"github.com/edp1096/toy-powerflow/pkg/network"
)

// nonFlatVoltage is a plausible operating point for the Stagg 5-bus case.
var nonFlatVoltage = []complex128{
	cmplx.Rect(1.06, 0),
	cmplx.Rect(1.0, -0.036),
	cmplx.Rect(0.987, -0.081),
	cmplx.Rect(0.984, -0.087),
	cmplx.Rect(0.972, -0.101),
}

func staggAdmittance(t *testing.T) *matrix.Admittance {
	t.Helper()
	y, err := cases.Stagg5().Admittance()
	require.NoError(t, err)
	return y
}

func TestBuildJacobian_DecoupledFlatStart(t *testing.T) {
	z := complex(0.01, 0.1)
	ysh := complex(0, 0.05)
	y, err := network.BuildAdmittance(2, []network.Branch{{From: 1, To: 2, Z: z, YShunt: ysh}})
	require.NoError(t, err)

	j, err := analysis.BuildJacobian([]complex128{1, 1}, y, analysis.DecoupledJacobian)
	require.NoError(t, err)
	require.Equal(t, 4, j.Size())

	yLine := 1 / z
	const n = 2
	for i := 0; i < n; i++ {
		k := 1 - i
		// With |V| = 1 and zero angles the sums collapse to the row of Y.
		assert.InDelta(t, imag(ysh), j.At(i, i), 1e-12)
		assert.InDelta(t, imag(yLine), j.At(i, k), 1e-12)
		assert.InDelta(t, -real(ysh), j.At(i+n, i+n), 1e-12)
		assert.InDelta(t, -real(yLine), j.At(i+n, k+n), 1e-12)

		for c := 0; c < n; c++ {
			assert.Zero(t, j.At(i, c+n))
			assert.Zero(t, j.At(i+n, c))
		}
	}
}

// calculated returns the calculated P and Q injections at v.
func calculated(t *testing.T, v []complex128, y *matrix.Admittance) ([]float64, []float64) {
	t.Helper()
	zero := make([]float64, len(v))
	m, err := analysis.Mismatches(v, y, zero, zero)
	require.NoError(t, err)
	return m.P, m.Q
}

func perturb(v []complex128, bus int, q analysis.Quantity, h float64) []complex128 {
	out := append([]complex128(nil), v...)
	if q == analysis.Angle {
		out[bus] *= cmplx.Rect(1, h)
	} else {
		out[bus] = cmplx.Rect(cmplx.Abs(out[bus])+h, cmplx.Phase(out[bus]))
	}
	return out
}

func TestBuildJacobian_FullMatchesFiniteDifferences(t *testing.T) {
	y := staggAdmittance(t)
	v := nonFlatVoltage
	n := len(v)

	j, err := analysis.BuildJacobian(v, y, analysis.FullJacobian)
	require.NoError(t, err)

	const h = 1e-6
	for k := 0; k < n; k++ {
		for _, q := range []analysis.Quantity{analysis.Angle, analysis.Magnitude} {
			col := analysis.Unknown{Bus: k, Quantity: q}.Index(n)
			pPlus, qPlus := calculated(t, perturb(v, k, q, h), y)
			pMinus, qMinus := calculated(t, perturb(v, k, q, -h), y)

			for i := 0; i < n; i++ {
				dP := (pPlus[i] - pMinus[i]) / (2 * h)
				dQ := (qPlus[i] - qMinus[i]) / (2 * h)
				assert.InDelta(t, dP, j.At(i, col), 1e-5, "dP%d/d%s%d", i, q, k)
				assert.InDelta(t, dQ, j.At(i+n, col), 1e-5, "dQ%d/d%s%d", i, q, k)
			}
		}
	}
}

func TestBuildJacobian_DecoupledOffDiagonalsFollowFull(t *testing.T) {
	y := staggAdmittance(t)
	v := nonFlatVoltage
	n := len(v)

	dec, err := analysis.BuildJacobian(v, y, analysis.DecoupledJacobian)
	require.NoError(t, err)
	full, err := analysis.BuildJacobian(v, y, analysis.FullJacobian)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			if i == k {
				continue
			}
			// Angle block is dP/dθ; the magnitude block carries |Vk| * dP/d|V|.
			assert.InDelta(t, full.At(i, k), dec.At(i, k), 1e-12)
			assert.InDelta(t, cmplx.Abs(v[k])*full.At(i, k+n), dec.At(i+n, k+n), 1e-12)
		}
	}
}

func TestJacobian_ReduceMatchesUnknownOrder(t *testing.T) {
	net := cases.Stagg5()
	y := staggAdmittance(t)
	v := nonFlatVoltage
	n := len(v)

	j, err := analysis.BuildJacobian(v, y, analysis.FullJacobian)
	require.NoError(t, err)

	unknowns := analysis.ActiveUnknowns(net.BusTypes())
	require.Len(t, unknowns, 7)

	sys, err := j.Reduce(unknowns)
	require.NoError(t, err)
	defer sys.Destroy()
	require.Equal(t, len(unknowns), sys.Size)

	// Feed J_reduced * x back in and expect x out again.
	x := []float64{0.1, -0.2, 0.3, 0.05, -0.15, 0.25, 0.12}
	for r, ur := range unknowns {
		var b float64
		for c, uc := range unknowns {
			b += j.At(ur.Index(n), uc.Index(n)) * x[c]
		}
		require.NoError(t, sys.AddRHS(r, b))
	}
	require.NoError(t, sys.Solve())
	assert.InDeltaSlice(t, x, sys.Solution(), 1e-9)
}

func TestJacobian_ReduceDimensionChecks(t *testing.T) {
	y := staggAdmittance(t)
	j, err := analysis.BuildJacobian(nonFlatVoltage, y, analysis.FullJacobian)
	require.NoError(t, err)

	_, err = j.Reduce(nil)
	require.ErrorIs(t, err, analysis.ErrDimensionMismatch)

	tooMany := make([]analysis.Unknown, j.Size()+1)
	_, err = j.Reduce(tooMany)
	require.ErrorIs(t, err, analysis.ErrDimensionMismatch)

	_, err = analysis.BuildJacobian(nonFlatVoltage[:3], y, analysis.FullJacobian)
	require.ErrorIs(t, err, analysis.ErrDimensionMismatch)

	_, err = analysis.BuildJacobian(nonFlatVoltage, y, analysis.Formulation(42))
	require.ErrorIs(t, err, analysis.ErrInvalidOptions)
}

func TestMismatchCountMatchesReducedJacobian(t *testing.T) {
	assignments := [][]network.BusType{
		{network.Slack, network.PQ, network.PQ, network.PQ, network.PQ},
		{network.Slack, network.PV, network.PV, network.PV, network.PV},
		{network.PQ, network.PV, network.Slack, network.PQ, network.PV},
		{network.PV, network.PQ, network.PQ, network.Slack, network.PQ},
	}

	y := staggAdmittance(t)
	j, err := analysis.BuildJacobian(nonFlatVoltage, y, analysis.FullJacobian)
	require.NoError(t, err)
	zero := make([]float64, len(nonFlatVoltage))
	m, err := analysis.Mismatches(nonFlatVoltage, y, zero, zero)
	require.NoError(t, err)

	for _, types := range assignments {
		unknowns := analysis.ActiveUnknowns(types)
		sys, err := j.Reduce(unknowns)
		require.NoError(t, err)
		assert.Equal(t, len(m.Select(unknowns)), sys.Size, "types %v", types)
		sys.Destroy()
	}
}
