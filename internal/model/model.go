package model

// Kind identifies the spectrum parametrization.
type Kind int

const (
	Analytic Kind = iota
	ByPotential
	ByPotentialWithEnd
	ByHubble
	External
)

func (k Kind) String() string {
	switch k {
	case Analytic:
		return "analytic"
	case ByPotential:
		return "inflation_potential"
	case ByPotentialWithEnd:
		return "inflation_potential_end"
	case ByHubble:
		return "inflation_hubble"
	case External:
		return "external"
	}
	return "unknown"
}

// Direction of a background integration in conformal time.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Sign returns +1 for forward integration, -1 for backward.
func (d Direction) Sign() float64 {
	if d == Backward {
		return -1
	}
	return 1
}

// Indices into the background part of a state vector. The field-velocity
// component exists only in the potential parametrization, and only for
// forward integration (backward integration follows the first-order
// slow-roll reduction and drops it).
const (
	IndexA    = 0
	IndexPhi  = 1
	IndexDPhi = 2
)

// Aux carries the derived background quantities needed by the perturbation
// equations: the comoving expansion rate aH = a'/a, and the effective
// frequencies z''/z (scalar) and a''/a (tensor). The latter two are only
// filled for forward derivatives.
type Aux struct {
	AH       float64
	ZppOverZ float64
	AppOverA float64
}

// Dynamics is the parametrization-dependent part of the inflation solver.
// The background state vector layout is [a, phi] or [a, phi, dphi/dtau]
// depending on BackgroundDim.
type Dynamics interface {
	Kind() Kind

	// BackgroundDim returns the number of background components for the
	// given integration direction.
	BackgroundDim(dir Direction) int

	// Check fails when the potential (resp. Hubble rate) takes a
	// forbidden value at phi.
	Check(phi float64) error

	// Epsilon returns the first slow-roll parameter at phi.
	Epsilon(phi float64) (float64, error)

	// DeriveBackground fills dy[:BackgroundDim(dir)] with the background
	// derivatives with respect to conformal time.
	DeriveBackground(dir Direction, y, dy []float64) (Aux, error)
}
