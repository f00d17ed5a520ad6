package model

import (
	"fmt"
	"math"
)

// PotentialShape selects the functional form of V(phi).
type PotentialShape int

const (
	// Polynomial is a quartic Taylor expansion around Center:
	// V = V0 + u V1 + u^2/2 V2 + u^3/6 V3 + u^4/24 V4, u = phi - Center.
	Polynomial PotentialShape = iota
	// Natural is V = V0 (1 + cos(phi/V1)).
	Natural
)

// PotentialModel is the inflaton potential parametrization. With WithEnd
// set, the potential is expected to drive inflation to a natural end
// (epsilon reaching 1) near the configured phi_end, and end-of-inflation
// targets become available to the background evolver.
type PotentialModel struct {
	Shape              PotentialShape
	V0, V1, V2, V3, V4 float64
	Center             float64
	WithEnd            bool
}

func (m *PotentialModel) Kind() Kind {
	if m.WithEnd {
		return ByPotentialWithEnd
	}
	return ByPotential
}

func (m *PotentialModel) BackgroundDim(dir Direction) int {
	if dir == Backward {
		// the dphi equation is dropped: backward integration sticks to
		// the first-order slow-roll solution
		return 2
	}
	return 3
}

// Potential evaluates V and its first two derivatives at phi.
func (m *PotentialModel) Potential(phi float64) (v, dv, ddv float64) {
	switch m.Shape {
	case Natural:
		v = m.V0 * (1. + math.Cos(phi/m.V1))
		dv = -m.V0 / m.V1 * math.Sin(phi/m.V1)
		ddv = -m.V0 / m.V1 / m.V1 * math.Cos(phi/m.V1)
	default:
		u := phi - m.Center
		v = m.V0 + u*m.V1 + u*u/2.*m.V2 + u*u*u/6.*m.V3 + u*u*u*u/24.*m.V4
		dv = m.V1 + u*m.V2 + u*u/2.*m.V3 + u*u*u/6.*m.V4
		ddv = m.V2 + u*m.V3 + u*u/2.*m.V4
	}
	return v, dv, ddv
}

// CheckPotential evaluates the potential and fails if it leaves the
// positive, monotonically decreasing branch the solver supports.
func (m *PotentialModel) CheckPotential(phi float64) (v, dv, ddv float64, err error) {
	v, dv, ddv = m.Potential(phi)
	if v <= 0. {
		return v, dv, ddv, fmt.Errorf("%w: V(%g) = %g", ErrUnphysicalPotential, phi, v)
	}
	if dv >= 0. {
		return v, dv, ddv, fmt.Errorf("%w: dV/dphi(%g) = %g, want < 0", ErrUnphysicalSlope, phi, dv)
	}
	return v, dv, ddv, nil
}

func (m *PotentialModel) Check(phi float64) error {
	_, _, _, err := m.CheckPotential(phi)
	return err
}

// Epsilon returns the first slow-roll parameter (dV/V)^2 / 16 pi.
func (m *PotentialModel) Epsilon(phi float64) (float64, error) {
	v, dv, _ := m.Potential(phi)
	if v <= 0. {
		return 0, fmt.Errorf("%w: V(%g) = %g", ErrUnphysicalPotential, phi, v)
	}
	r := dv / v
	return r * r / 16. / math.Pi, nil
}

// SlowRollVelocity returns the slow-roll prediction dphi/dt = -V'/(3H) at
// phi, with H inferred from the potential energy alone.
func (m *PotentialModel) SlowRollVelocity(phi float64) (float64, error) {
	v, dv, _, err := m.CheckPotential(phi)
	if err != nil {
		return 0, err
	}
	return -dv / 3. / math.Sqrt((8.*math.Pi/3.)*v), nil
}

func (m *PotentialModel) DeriveBackground(dir Direction, y, dy []float64) (Aux, error) {
	a := y[IndexA]
	a2 := a * a
	v, dv, ddv := m.Potential(y[IndexPhi])

	if dir == Backward {
		// first-order slow-roll reduction: kinetic energy neglected,
		// phi'' neglected against 2 aH phi'
		aH := math.Sqrt((8. * math.Pi / 3.) * a2 * v)
		dy[IndexA] = a * aH
		dy[IndexPhi] = -a2 * dv / 3. / aH
		return Aux{AH: aH}, nil
	}

	dphi := y[IndexDPhi]
	aH := math.Sqrt((8. * math.Pi / 3.) * (0.5*dphi*dphi + a2*v))
	dy[IndexA] = a * aH
	dy[IndexPhi] = dphi
	dy[IndexDPhi] = -2.*aH*dphi - a2*dv

	zpp := 2.*aH*aH -
		a2*ddv -
		4.*math.Pi*(7.*dphi*dphi+4.*dphi/aH*a2*dv) +
		32.*math.Pi*math.Pi*math.Pow(dphi, 4)/(aH*aH)

	app := 2.*aH*aH - 4.*math.Pi*dphi*dphi

	return Aux{AH: aH, ZppOverZ: zpp, AppOverA: app}, nil
}
