package matrix

import (
	"fmt"
	"math"

	"github.com/edp1096/sparse"
)

// System is a square real linear system A*x = b backed by a sparse LU.
// Indices are 0-based here and shifted to the 1-based sparse package inside.
type System struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
	config   *sparse.Configuration
}

func NewSystem(size int) (*System, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &System{
		Size:   size,
		matrix: mat,
		rhs:    make([]float64, size+1), // 1-based indexing
		config: config,
	}, nil
}

func (s *System) AddElement(i, j int, value float64) error {
	if i < 0 || j < 0 || i >= s.Size || j >= s.Size {
		return fmt.Errorf("%w: (i=%d, j=%d, size=%d)", ErrIndexOutOfRange, i, j, s.Size)
	}
	s.matrix.GetElement(int64(i+1), int64(j+1)).Real += value
	return nil
}

func (s *System) AddRHS(i int, value float64) error {
	if i < 0 || i >= s.Size {
		return fmt.Errorf("%w: rhs (i=%d, size=%d)", ErrIndexOutOfRange, i, s.Size)
	}
	s.rhs[i+1] += value
	return nil
}

// Solve factors the matrix and back-substitutes the accumulated rhs.
func (s *System) Solve() (err error) {
	// The factorization can index past its work vectors on degenerate input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSingular, r)
		}
	}()

	err = s.matrix.Factor()
	if err != nil {
		return fmt.Errorf("%w: factorization failed: %v", ErrSingular, err)
	}

	solution, err := s.matrix.Solve(s.rhs)
	if err != nil {
		return fmt.Errorf("%w: solve failed: %v", ErrSingular, err)
	}

	for i := 1; i <= s.Size; i++ {
		if math.IsNaN(solution[i]) || math.IsInf(solution[i], 0) {
			return fmt.Errorf("%w: non-finite solution at row %d", ErrSingular, i-1)
		}
	}

	s.solution = solution
	return nil
}

// Solution returns x in 0-based order. It is nil before a successful Solve.
func (s *System) Solution() []float64 {
	if s.solution == nil {
		return nil
	}
	x := make([]float64, s.Size)
	copy(x, s.solution[1:s.Size+1])
	return x
}

func (s *System) Destroy() {
	if s.matrix != nil {
		s.matrix.Destroy()
		s.matrix = nil
	}
}
