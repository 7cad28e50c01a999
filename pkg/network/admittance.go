package network

import (
	"fmt"

	"github.com/edp1096/toy-powerflow/pkg/matrix"
)

// BuildAdmittance stamps every branch into a fresh numBuses x numBuses
// matrix. Bus numbers are not range-checked up front; a bad one fails the
// stamp with ErrBusIndex and no matrix is returned.
func BuildAdmittance(numBuses int, branches []Branch) (*matrix.Admittance, error) {
	y, err := matrix.NewAdmittance(numBuses)
	if err != nil {
		return nil, err
	}

	for k, br := range branches {
		if err := br.Stamp(y); err != nil {
			return nil, fmt.Errorf("branch %d (%d-%d): %w", k, br.From, br.To, err)
		}
	}

	return y, nil
}
