package analysis

import (
	"fmt"

	"github.com/edp1096/toy-powerflow/pkg/network"
)

type Quantity int

const (
	Angle Quantity = iota
	Magnitude
)

func (q Quantity) String() string {
	switch q {
	case Angle:
		return "angle"
	case Magnitude:
		return "magnitude"
	default:
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
}

// Unknown is one state variable the Newton step corrects.
type Unknown struct {
	Bus      int
	Quantity Quantity
}

// Index is the row (P or Q equation) and column (angle or magnitude) of the
// unknown in the 2N x 2N Jacobian.
func (u Unknown) Index(numBuses int) int {
	if u.Quantity == Magnitude {
		return u.Bus + numBuses
	}
	return u.Bus
}

// ActiveUnknowns lists the unknowns in ascending bus order, angle before
// magnitude: PQ buses contribute both, PV buses the angle, Slack nothing.
// Mismatch selection, Jacobian reduction and the update all walk this list.
func ActiveUnknowns(types []network.BusType) []Unknown {
	unknowns := make([]Unknown, 0, 2*len(types))
	for i, t := range types {
		switch t {
		case network.PQ:
			unknowns = append(unknowns, Unknown{Bus: i, Quantity: Angle}, Unknown{Bus: i, Quantity: Magnitude})
		case network.PV:
			unknowns = append(unknowns, Unknown{Bus: i, Quantity: Angle})
		}
	}
	return unknowns
}
