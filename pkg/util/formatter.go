package util

import (
	"fmt"
	"math"
)

// FormatPerUnit prints a per-unit quantity with a unit suffix.
func FormatPerUnit(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue == 0:
		return fmt.Sprintf("%.4f %s", value, unit)
	case absValue >= 1e3 || absValue < 1e-4:
		return fmt.Sprintf("%.3e %s", value, unit)
	default:
		return fmt.Sprintf("%.4f %s", value, unit)
	}
}

func FormatMagnitudePhase(name string, value, phase float64) string {
	return fmt.Sprintf("%s=%s<%sdeg", name, FormatMagnitude(value), FormatPhase(phase))
}

func FormatMagnitude(value float64) string {
	if value >= 1000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%8.2e", value) // "1.00e+03" or "5.43e-05"
	}
	return fmt.Sprintf("%8.4f", value) // "  0.9872"
}

func FormatPhase(value float64) string {
	return fmt.Sprintf("%8.3f", value) // "  -4.637"
}
