package analysis

import "errors"

var (
	ErrInvalidOptions = errors.New("analysis: invalid options")

	// ErrSingularJacobian is returned when the correction system cannot be
	// solved. The solve is not retried.
	ErrSingularJacobian = errors.New("analysis: singular jacobian")

	// ErrDimensionMismatch means the mismatch vector, the unknown list and
	// the reduced Jacobian disagree in size.
	ErrDimensionMismatch = errors.New("analysis: dimension mismatch")

	// ErrNotConverged is only returned when Options.Strict is set.
	ErrNotConverged = errors.New("analysis: did not converge")

	ErrNotSetup = errors.New("analysis: network not set")
)
