package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-powerflow/pkg/matrix"
)

// Jacobian is the 2N x 2N sensitivity matrix of the calculated injections.
// Rows 0..N-1 are P equations and N..2N-1 Q equations; columns 0..N-1 are
// voltage angles and N..2N-1 voltage magnitudes. Rows and columns of the
// slack bus and PV magnitudes are filled but dropped by Reduce.
type Jacobian struct {
	N    int
	data []float64
}

func newJacobian(numBuses int) *Jacobian {
	return &Jacobian{
		N:    numBuses,
		data: make([]float64, 4*numBuses*numBuses),
	}
}

func (j *Jacobian) Size() int {
	return 2 * j.N
}

func (j *Jacobian) At(r, c int) float64 {
	return j.data[r*2*j.N+c]
}

func (j *Jacobian) set(r, c int, value float64) {
	j.data[r*2*j.N+c] = value
}

// BuildJacobian evaluates the Jacobian at voltage v.
func BuildJacobian(v []complex128, y *matrix.Admittance, f Formulation) (*Jacobian, error) {
	if y.Size != len(v) {
		return nil, fmt.Errorf("%w: %d voltages, admittance %dx%d", ErrDimensionMismatch, len(v), y.Size, y.Size)
	}

	j := newJacobian(len(v))
	switch f {
	case DecoupledJacobian:
		j.fillDecoupled(v, y)
	case FullJacobian:
		j.fillFull(v, y)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, f)
	}
	return j, nil
}

// fillDecoupled writes the angle-angle and magnitude-magnitude blocks:
//
//	J[i,i]     =  Σm |Yim||Vm| sin(∠Yim - ∠Vi + ∠Vm)
//	J[i,k]     = -|Yik||Vi||Vk| sin(∠Yik - ∠Vi + ∠Vk)
//	J[i+N,i+N] = -Σm |Yim||Vm| cos(∠Yim - ∠Vi + ∠Vm)
//	J[i+N,k+N] =  |Yik||Vi||Vk| cos(∠Yik - ∠Vi + ∠Vk)
//
// The diagonal sums run over every bus including i.
func (j *Jacobian) fillDecoupled(v []complex128, y *matrix.Admittance) {
	n := len(v)
	for i := 0; i < n; i++ {
		vi, di := cmplx.Abs(v[i]), cmplx.Phase(v[i])
		row := y.Row(i)
		for k := 0; k < n; k++ {
			if i == k {
				var sumSin, sumCos float64
				for m, yim := range row {
					theta := cmplx.Phase(yim) - di + cmplx.Phase(v[m])
					w := cmplx.Abs(yim) * cmplx.Abs(v[m])
					sumSin += w * math.Sin(theta)
					sumCos += w * math.Cos(theta)
				}
				j.set(i, i, sumSin)
				j.set(i+n, i+n, -sumCos)
				continue
			}

			yik := row[k]
			theta := cmplx.Phase(yik) - di + cmplx.Phase(v[k])
			w := cmplx.Abs(yik) * vi * cmplx.Abs(v[k])
			j.set(i, k, -w*math.Sin(theta))
			j.set(i+n, k+n, w*math.Cos(theta))
		}
	}
}

// fillFull writes the exact derivatives of
//
//	P_i =  Σk |Vi||Vk||Yik| cos(∠Yik + ∠Vk - ∠Vi)
//	Q_i = -Σk |Vi||Vk||Yik| sin(∠Yik + ∠Vk - ∠Vi)
//
// with respect to every angle and magnitude.
func (j *Jacobian) fillFull(v []complex128, y *matrix.Admittance) {
	n := len(v)
	for i := 0; i < n; i++ {
		vi, di := cmplx.Abs(v[i]), cmplx.Phase(v[i])
		row := y.Row(i)

		var dPdTheta, dPdV, dQdTheta, dQdV float64
		for k, yik := range row {
			if k == i || yik == 0 {
				continue
			}
			vk := cmplx.Abs(v[k])
			theta := cmplx.Phase(yik) + cmplx.Phase(v[k]) - di
			mag := cmplx.Abs(yik)
			sin, cos := math.Sincos(theta)

			j.set(i, k, -vi*vk*mag*sin)
			j.set(i, k+n, vi*mag*cos)
			j.set(i+n, k, -vi*vk*mag*cos)
			j.set(i+n, k+n, -vi*mag*sin)

			dPdTheta += vi * vk * mag * sin
			dPdV += vk * mag * cos
			dQdTheta += vi * vk * mag * cos
			dQdV += vk * mag * sin
		}

		yii := row[i]
		sinII, cosII := math.Sincos(cmplx.Phase(yii))
		j.set(i, i, dPdTheta)
		j.set(i, i+n, 2*vi*cmplx.Abs(yii)*cosII+dPdV)
		j.set(i+n, i, dQdTheta)
		j.set(i+n, i+n, -2*vi*cmplx.Abs(yii)*sinII-dQdV)
	}
}

// Reduce loads the rows and columns of the active unknowns, in list order,
// into a square sparse system. Exact zeros are left out of the pattern.
func (j *Jacobian) Reduce(unknowns []Unknown) (*matrix.System, error) {
	if len(unknowns) == 0 || len(unknowns) > j.Size() {
		return nil, fmt.Errorf("%w: %d unknowns for a %dx%d jacobian", ErrDimensionMismatch, len(unknowns), j.Size(), j.Size())
	}

	sys, err := matrix.NewSystem(len(unknowns))
	if err != nil {
		return nil, err
	}

	for r, ur := range unknowns {
		row := ur.Index(j.N)
		for c, uc := range unknowns {
			value := j.At(row, uc.Index(j.N))
			if value == 0 {
				continue
			}
			if err := sys.AddElement(r, c, value); err != nil {
				sys.Destroy()
				return nil, err
			}
		}
	}

	return sys, nil
}
