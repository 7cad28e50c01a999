// Package network holds the bus and branch data of a transmission network
// and builds its nodal admittance matrix.
package network

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-powerflow/pkg/matrix"
)

type Network struct {
	Name     string
	Buses    []Bus
	Branches []Branch
}

func New(name string, buses []Bus, branches []Branch) *Network {
	return &Network{
		Name:     name,
		Buses:    buses,
		Branches: branches,
	}
}

func (n *Network) NumBuses() int {
	return len(n.Buses)
}

// Validate rejects input the solver cannot handle: no buses, a slack count
// other than one, branch ends outside 1..N, zero impedance and NaN/Inf data.
func (n *Network) Validate() error {
	if len(n.Buses) == 0 {
		return ErrEmpty
	}

	slack := -1
	for i, bus := range n.Buses {
		switch bus.Type {
		case PQ, PV:
		case Slack:
			if slack >= 0 {
				return fmt.Errorf("%w: buses %d and %d", ErrMultipleSlack, slack, i)
			}
			slack = i
		default:
			return fmt.Errorf("bus %d: %w: %d", i, ErrBusType, int(bus.Type))
		}

		for _, v := range []float64{bus.Pd, bus.Qd, bus.Pg, bus.Qg, bus.Vm, bus.Va} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("bus %d: %w", i, ErrNotFinite)
			}
		}
	}
	if slack < 0 {
		return ErrNoSlack
	}

	for k, br := range n.Branches {
		if br.From < 1 || br.From > len(n.Buses) || br.To < 1 || br.To > len(n.Buses) {
			return fmt.Errorf("branch %d (%d-%d): %w", k, br.From, br.To, ErrBusIndex)
		}
		if br.Z == 0 {
			return fmt.Errorf("branch %d (%d-%d): %w", k, br.From, br.To, ErrZeroImpedance)
		}
		if cmplx.IsNaN(br.Z) || cmplx.IsInf(br.Z) || cmplx.IsNaN(br.YShunt) || cmplx.IsInf(br.YShunt) {
			return fmt.Errorf("branch %d (%d-%d): %w", k, br.From, br.To, ErrNotFinite)
		}
	}

	return nil
}

// SlackIndex returns the 0-based index of the first slack bus, or -1.
func (n *Network) SlackIndex() int {
	for i, bus := range n.Buses {
		if bus.Type == Slack {
			return i
		}
	}
	return -1
}

func (n *Network) BusTypes() []BusType {
	types := make([]BusType, len(n.Buses))
	for i, bus := range n.Buses {
		types[i] = bus.Type
	}
	return types
}

// Injections returns the specified net active and reactive injections.
func (n *Network) Injections() (pd, qd []float64) {
	pd = make([]float64, len(n.Buses))
	qd = make([]float64, len(n.Buses))
	for i, bus := range n.Buses {
		pd[i] = bus.Pd
		qd[i] = bus.Qd
	}
	return pd, qd
}

func (n *Network) Admittance() (*matrix.Admittance, error) {
	return BuildAdmittance(len(n.Buses), n.Branches)
}
