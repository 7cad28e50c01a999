package matrix

import (
	"fmt"
	"math/cmplx"
)

// Admittance is a dense, row-major N x N complex nodal admittance matrix.
type Admittance struct {
	Size int
	data []complex128
}

func NewAdmittance(size int) (*Admittance, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	return &Admittance{
		Size: size,
		data: make([]complex128, size*size),
	}, nil
}

func (y *Admittance) inRange(i, j int) bool {
	return i >= 0 && j >= 0 && i < y.Size && j < y.Size
}

// AddComplexElement accumulates value into Y[i,j]. Out-of-range indices are
// rejected before anything is written.
func (y *Admittance) AddComplexElement(i, j int, value complex128) error {
	if !y.inRange(i, j) {
		return fmt.Errorf("%w: (i=%d, j=%d, size=%d)", ErrIndexOutOfRange, i, j, y.Size)
	}
	y.data[i*y.Size+j] += value
	return nil
}

// At returns Y[i,j]. It panics on out-of-range indices like a slice would.
func (y *Admittance) At(i, j int) complex128 {
	if !y.inRange(i, j) {
		panic(fmt.Sprintf("matrix: Admittance.At(%d, %d) out of range for size %d", i, j, y.Size))
	}
	return y.data[i*y.Size+j]
}

// Row returns a view of row i. Callers must not modify it.
func (y *Admittance) Row(i int) []complex128 {
	return y.data[i*y.Size : (i+1)*y.Size]
}

// Mul returns the injected current vector I = Y*V.
func (y *Admittance) Mul(v []complex128) ([]complex128, error) {
	if len(v) != y.Size {
		return nil, fmt.Errorf("%w: vector %d, matrix %d", ErrDimensionMismatch, len(v), y.Size)
	}

	current := make([]complex128, y.Size)
	for i := 0; i < y.Size; i++ {
		var sum complex128
		for k, yik := range y.Row(i) {
			sum += yik * v[k]
		}
		current[i] = sum
	}
	return current, nil
}

// IsSymmetric reports whether |Y[i,j] - Y[j,i]| <= eps for every pair.
func (y *Admittance) IsSymmetric(eps float64) bool {
	for i := 0; i < y.Size; i++ {
		for j := i + 1; j < y.Size; j++ {
			if cmplx.Abs(y.data[i*y.Size+j]-y.data[j*y.Size+i]) > eps {
				return false
			}
		}
	}
	return true
}
