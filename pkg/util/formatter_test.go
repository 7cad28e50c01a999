package util

import "testing"

func TestFormatPerUnit(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0.0000 pu"},
		{0.2, "0.2000 pu"},
		{-0.45, "-0.4500 pu"},
		{1e-5, "1.000e-05 pu"},
		{2500, "2.500e+03 pu"},
	}
	for _, tt := range tests {
		if got := FormatPerUnit(tt.value, "pu"); got != tt.want {
			t.Errorf("FormatPerUnit(%g) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatMagnitudePhase(t *testing.T) {
	tests := []struct {
		name         string
		value, phase float64
		want         string
	}{
		{"V(1)", 1.06, 0, "V(1)=  1.0600<   0.000deg"},
		{"V(5)", 0.971695985128185, -5.76494945569742, "V(5)=  0.9717<  -5.765deg"},
		{"V(2)", 5e-5, 12.5, "V(2)=5.00e-05<  12.500deg"},
	}
	for _, tt := range tests {
		if got := FormatMagnitudePhase(tt.name, tt.value, tt.phase); got != tt.want {
			t.Errorf("FormatMagnitudePhase(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
