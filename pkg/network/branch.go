package network

import (
	"fmt"

	"github.com/edp1096/toy-powerflow/pkg/matrix"
)

// Branch is a line or transformer between two buses. From and To are 1-based
// bus numbers; parallel branches between the same pair add up.
type Branch struct {
	From   int
	To     int
	Z      complex128 // Series impedance (p.u.)
	YShunt complex128 // Shunt admittance added at both ends
}

// Admittance returns the series admittance 1/Z.
func (b Branch) Admittance() (complex128, error) {
	if b.Z == 0 {
		return 0, ErrZeroImpedance
	}
	return 1 / b.Z, nil
}

// Stamp adds the branch pi-model into m.
func (b Branch) Stamp(m matrix.AdmittanceStamper) error {
	yLine, err := b.Admittance()
	if err != nil {
		return err
	}

	from, to := b.From-1, b.To-1
	stamps := []struct {
		i, j  int
		value complex128
	}{
		{from, from, yLine + b.YShunt},
		{to, to, yLine + b.YShunt},
		{from, to, -yLine},
		{to, from, -yLine},
	}
	for _, s := range stamps {
		if err := m.AddComplexElement(s.i, s.j, s.value); err != nil {
			return fmt.Errorf("%w: %w", ErrBusIndex, err)
		}
	}

	return nil
}
