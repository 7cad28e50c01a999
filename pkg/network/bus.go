package network

import (
	"fmt"
	"strings"
)

type BusType int

const (
	PQ BusType = iota
	PV
	Slack
)

func (t BusType) String() string {
	switch t {
	case PQ:
		return "PQ"
	case PV:
		return "PV"
	case Slack:
		return "Slack"
	default:
		return fmt.Sprintf("BusType(%d)", int(t))
	}
}

func ParseBusType(s string) (BusType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pq":
		return PQ, nil
	case "pv":
		return PV, nil
	case "slack":
		return Slack, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBusType, s)
}

func (t BusType) MarshalText() ([]byte, error) {
	switch t {
	case PQ, PV, Slack:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrBusType, int(t))
}

func (t *BusType) UnmarshalText(text []byte) error {
	parsed, err := ParseBusType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Bus is one network node. Its index is its position in Network.Buses.
//
// Pd and Qd are the specified net injection (p.u.) that the solver drives the
// calculated injection towards; a load is therefore a negative value. Pg and
// Qg are carried for the caller's bookkeeping and do not enter the mismatch.
type Bus struct {
	Type BusType
	Pd   float64
	Qd   float64
	Pg   float64
	Qg   float64
	Vm   float64 // Fixed for PV and Slack
	Va   float64 // Degrees, Slack only
}
