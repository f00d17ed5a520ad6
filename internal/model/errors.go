package model

import "errors"

// Domain errors for parametrization validity checks.
var (
	// ErrUnphysicalPotential indicates V(phi) <= 0 at an evaluated point.
	ErrUnphysicalPotential = errors.New("model: potential not positive")

	// ErrUnphysicalHubble indicates H(phi) < 0 at an evaluated point.
	ErrUnphysicalHubble = errors.New("model: Hubble rate not positive")

	// ErrUnphysicalSlope indicates dV/dphi >= 0 (resp. dH/dphi > 0); the
	// solver only handles the monotonic decreasing branch.
	ErrUnphysicalSlope = errors.New("model: slope has wrong sign")
)
