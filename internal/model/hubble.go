package model

import (
	"fmt"
	"math"
)

// HubbleModel parametrizes inflation directly through a quartic Taylor
// expansion of the Hubble rate, H = H0 + phi H1 + phi^2/2 H2 + phi^3/6 H3 +
// phi^4/24 H4. The field velocity is algebraic in this mode,
// dphi/dt = -dH/(4 pi), so the background system is first order and can be
// integrated exactly in both time directions.
type HubbleModel struct {
	H0, H1, H2, H3, H4 float64
}

func (m *HubbleModel) Kind() Kind { return ByHubble }

func (m *HubbleModel) BackgroundDim(Direction) int { return 2 }

// Hubble evaluates H and its first three derivatives at phi.
func (m *HubbleModel) Hubble(phi float64) (h, dh, ddh, dddh float64) {
	h = m.H0 + phi*m.H1 + phi*phi/2.*m.H2 + phi*phi*phi/6.*m.H3 + phi*phi*phi*phi/24.*m.H4
	dh = m.H1 + phi*m.H2 + phi*phi/2.*m.H3 + phi*phi*phi/6.*m.H4
	ddh = m.H2 + phi*m.H3 + phi*phi/2.*m.H4
	dddh = m.H3 + phi*m.H4
	return h, dh, ddh, dddh
}

// CheckHubble evaluates H(phi) and fails if it is negative or increasing
// with phi.
func (m *HubbleModel) CheckHubble(phi float64) (h, dh, ddh, dddh float64, err error) {
	h, dh, ddh, dddh = m.Hubble(phi)
	if h < 0. {
		return h, dh, ddh, dddh, fmt.Errorf("%w: H(%g) = %g", ErrUnphysicalHubble, phi, h)
	}
	if dh > 0. {
		return h, dh, ddh, dddh, fmt.Errorf("%w: dH/dphi(%g) = %g, want < 0", ErrUnphysicalSlope, phi, dh)
	}
	return h, dh, ddh, dddh, nil
}

func (m *HubbleModel) Check(phi float64) error {
	_, _, _, _, err := m.CheckHubble(phi)
	return err
}

// Epsilon returns the first slow-roll parameter (dH/H)^2 / 4 pi.
func (m *HubbleModel) Epsilon(phi float64) (float64, error) {
	h, dh, _, _ := m.Hubble(phi)
	if h <= 0. {
		return 0, fmt.Errorf("%w: H(%g) = %g", ErrUnphysicalHubble, phi, h)
	}
	r := dh / h
	return r * r / 4. / math.Pi, nil
}

func (m *HubbleModel) DeriveBackground(dir Direction, y, dy []float64) (Aux, error) {
	a := y[IndexA]
	a2 := a * a
	h, dh, ddh, dddh := m.Hubble(y[IndexPhi])

	dy[IndexA] = a2 * h
	dy[IndexPhi] = -1. / 4. / math.Pi * a * dh

	pi := math.Pi
	zpp := 2.*a2*h*h -
		3./4./pi*a2*h*ddh +
		1./16./pi/pi*a2*ddh*ddh +
		1./16./pi/pi*a2*dh*dddh -
		1./4./pi/pi*a2*dh*dh*ddh/h +
		1./2./pi*a2*dh*dh +
		1./8./pi/pi*a2*dh*dh*dh*dh/h/h

	app := 2.*a2*h*h - 4.*pi*dy[IndexPhi]*dy[IndexPhi]

	return Aux{AH: a * h, ZppOverZ: zpp, AppOverA: app}, nil
}
