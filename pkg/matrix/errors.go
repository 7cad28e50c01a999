package matrix

import "errors"

var (
	// ErrIndexOutOfRange is returned for any row or column outside 0..Size-1.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrBadSize is returned when a matrix or system is created with size <= 0.
	ErrBadSize = errors.New("matrix: invalid size")

	// ErrDimensionMismatch signals operands of incompatible length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrSingular is returned when the LU factorization finds no usable pivot
	// or the solution contains NaN/Inf.
	ErrSingular = errors.New("matrix: singular system")
)
