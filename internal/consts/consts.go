package consts

import "math"

const (
	DefaultTolerance     = 1e-6 // Convergence threshold on the mismatch norm (p.u.)
	DefaultMaxIterations = 50   // Newton steps before giving up

	DegToRad = math.Pi / 180.0
	RadToDeg = 180.0 / math.Pi
)
