package network

import "errors"

var (
	ErrEmpty         = errors.New("network: no buses")
	ErrNoSlack       = errors.New("network: no slack bus")
	ErrMultipleSlack = errors.New("network: more than one slack bus")
	ErrBusIndex      = errors.New("network: bus index out of range")
	ErrZeroImpedance = errors.New("network: zero series impedance")
	ErrNotFinite     = errors.New("network: NaN or Inf value")
	ErrBusType       = errors.New("network: unknown bus type")
)
