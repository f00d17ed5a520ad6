package model

import (
	"errors"
	"math"
	"testing"
)

func TestHubble_Derivatives(t *testing.T) {
	m := &HubbleModel{
		H0: 1.2e-5,
		H1: -3.0e-7,
		H2: 2.0e-8,
		H3: -1.0e-9,
		H4: 5.0e-11,
	}

	h := 1e-4
	for _, phi := range []float64{-1.0, 0.0, 2.5} {
		hub, dh, ddh, dddh := m.Hubble(phi)

		hp, dhp, ddhp, _ := m.Hubble(phi + h)
		hm, dhm, ddhm, _ := m.Hubble(phi - h)

		fd := (hp - hm) / (2 * h)
		if math.Abs(fd-dh) > 1e-8*math.Abs(dh)+1e-18 {
			t.Errorf("phi=%g: dH mismatch: analytic %e, finite difference %e", phi, dh, fd)
		}

		fd2 := (hp - 2*hub + hm) / (h * h)
		if math.Abs(fd2-ddh) > 1e-5*math.Abs(ddh)+1e-16 {
			t.Errorf("phi=%g: ddH mismatch: analytic %e, finite difference %e", phi, ddh, fd2)
		}

		fd3 := (dhp - dhm) / (2 * h)
		if math.Abs(fd3-ddh) > 1e-8*math.Abs(ddh)+1e-18 {
			t.Errorf("phi=%g: ddH via dH mismatch: analytic %e, finite difference %e", phi, ddh, fd3)
		}

		fd4 := (ddhp - ddhm) / (2 * h)
		if math.Abs(fd4-dddh) > 1e-8*math.Abs(dddh)+1e-18 {
			t.Errorf("phi=%g: dddH mismatch: analytic %e, finite difference %e", phi, dddh, fd4)
		}
	}
}

func TestCheckHubble_Unphysical(t *testing.T) {
	m := &HubbleModel{H0: -1e-5, H1: -1e-7}
	if _, _, _, _, err := m.CheckHubble(0); !errors.Is(err, ErrUnphysicalHubble) {
		t.Errorf("expected ErrUnphysicalHubble, got %v", err)
	}

	m = &HubbleModel{H0: 1e-5, H1: 1e-7}
	if _, _, _, _, err := m.CheckHubble(0); !errors.Is(err, ErrUnphysicalSlope) {
		t.Errorf("expected ErrUnphysicalSlope, got %v", err)
	}

	m = &HubbleModel{H0: 1e-5, H1: -1e-7}
	if _, _, _, _, err := m.CheckHubble(0); err != nil {
		t.Errorf("valid Hubble rate rejected: %v", err)
	}
}

func TestEpsilon_Hubble(t *testing.T) {
	m := &HubbleModel{H0: 1e-5, H1: -2e-7}

	eps, err := m.Epsilon(0)
	if err != nil {
		t.Fatalf("Epsilon returned error: %v", err)
	}

	r := m.H1 / m.H0
	want := r * r / (4. * math.Pi)
	if math.Abs(eps-want) > 1e-18 {
		t.Errorf("epsilon = %e, want %e", eps, want)
	}
}

func TestDeriveBackground_HubbleVelocity(t *testing.T) {
	m := &HubbleModel{H0: 1e-5, H1: -2e-7}

	y := []float64{3.0, 0.5}
	dy := make([]float64, 2)
	aux, err := m.DeriveBackground(Forward, y, dy)
	if err != nil {
		t.Fatalf("DeriveBackground returned error: %v", err)
	}

	h, dh, _, _ := m.Hubble(0.5)
	if math.Abs(dy[IndexA]-y[IndexA]*y[IndexA]*h) > 1e-18 {
		t.Errorf("da/dtau = %e, want a^2 H = %e", dy[IndexA], y[IndexA]*y[IndexA]*h)
	}
	wantDPhi := -y[IndexA] * dh / (4. * math.Pi)
	if math.Abs(dy[IndexPhi]-wantDPhi) > 1e-18 {
		t.Errorf("dphi/dtau = %e, want %e", dy[IndexPhi], wantDPhi)
	}
	if math.Abs(aux.AH-y[IndexA]*h) > 1e-18 {
		t.Errorf("aH = %e, want %e", aux.AH, y[IndexA]*h)
	}
	if dy[IndexPhi] <= 0 {
		t.Errorf("field should roll toward larger phi when dH < 0, got dphi/dtau = %e", dy[IndexPhi])
	}
}
