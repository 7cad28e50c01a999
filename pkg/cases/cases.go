// Package cases provides small, well-known networks built in code.
package cases

import (
	"errors"
	"fmt"
	"sort"

	"github.com/edp1096/toy-powerflow/pkg/network"
)

var ErrUnknownCase = errors.New("cases: unknown case")

var registry = map[string]func() *network.Network{
	"twobus":   TwoBus,
	"threebus": ThreeBus,
	"stagg5":   Stagg5,
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh copy of the named case.
func Get(name string) (*network.Network, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCase, name)
	}
	return build(), nil
}

// TwoBus is a slack bus feeding an unloaded PQ bus over one line.
func TwoBus() *network.Network {
	return network.New("two-bus no load",
		[]network.Bus{
			{Type: network.Slack, Vm: 1.0, Va: 0},
			{Type: network.PQ, Vm: 1.0},
		},
		[]network.Branch{
			{From: 1, To: 2, Z: complex(0.01, 0.1)},
		},
	)
}

// ThreeBus has one generator (PV) and one load (PQ) in a meshed triangle.
func ThreeBus() *network.Network {
	return network.New("three-bus",
		[]network.Bus{
			{Type: network.Slack, Vm: 1.05, Va: 0},
			{Type: network.PV, Pd: 0.4, Pg: 0.4, Vm: 1.02},
			{Type: network.PQ, Pd: -0.6, Qd: -0.25, Vm: 1.0},
		},
		[]network.Branch{
			{From: 1, To: 2, Z: complex(0.02, 0.06), YShunt: complex(0, 0.03)},
			{From: 1, To: 3, Z: complex(0.08, 0.24), YShunt: complex(0, 0.025)},
			{From: 2, To: 3, Z: complex(0.06, 0.18), YShunt: complex(0, 0.02)},
		},
	)
}

// Stagg5 is the 5-bus system of Stagg & El-Abiad (100 MVA base), with the
// line charging split equally between both ends.
func Stagg5() *network.Network {
	return network.New("stagg 5-bus",
		[]network.Bus{
			{Type: network.Slack, Vm: 1.06, Va: 0},
			{Type: network.PV, Pd: 0.2, Pg: 0.4, Vm: 1.0},
			{Type: network.PQ, Pd: -0.45, Qd: -0.15, Vm: 1.0},
			{Type: network.PQ, Pd: -0.4, Qd: -0.05, Vm: 1.0},
			{Type: network.PQ, Pd: -0.6, Qd: -0.1, Vm: 1.0},
		},
		[]network.Branch{
			{From: 1, To: 2, Z: complex(0.02, 0.06), YShunt: complex(0, 0.03)},
			{From: 1, To: 3, Z: complex(0.08, 0.24), YShunt: complex(0, 0.025)},
			{From: 2, To: 3, Z: complex(0.06, 0.18), YShunt: complex(0, 0.02)},
			{From: 2, To: 4, Z: complex(0.06, 0.18), YShunt: complex(0, 0.02)},
			{From: 2, To: 5, Z: complex(0.04, 0.12), YShunt: complex(0, 0.015)},
			{From: 3, To: 4, Z: complex(0.01, 0.03), YShunt: complex(0, 0.01)},
			{From: 4, To: 5, Z: complex(0.08, 0.24), YShunt: complex(0, 0.025)},
		},
	)
}
