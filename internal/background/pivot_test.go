package background

import (
	"math"
	"testing"

	"github.com/san-kum/primordial/internal/model"
)

func TestFindPhiStop_Natural(t *testing.T) {
	// V = V0 (1 + cos(phi/f)): epsilon = 1 at phi = 2f atan(4 sqrt(pi) f)
	f := 10.0
	m := &model.PotentialModel{Shape: model.Natural, V0: 1e-10, V1: f}
	prec := newPrecision()

	phiStop, err := FindPhiStop(m, prec, 31.4)
	if err != nil {
		t.Fatalf("FindPhiStop: %v", err)
	}

	want := 2. * f * math.Atan(4.*math.Sqrt(math.Pi)*f)
	if math.Abs(phiStop-want) > 1e-2 {
		t.Errorf("phi_stop = %v, want %v", phiStop, want)
	}

	eps, err := m.Epsilon(phiStop)
	if err != nil {
		t.Fatalf("Epsilon: %v", err)
	}
	if math.Abs(eps-1.) > 0.05 {
		t.Errorf("epsilon at phi_stop = %v, want 1", eps)
	}
}

func TestFindPhiStop_AbruptEnd(t *testing.T) {
	// epsilon stays below 1 all the way: inflation ends by decree at
	// phiEnd, like in hybrid models
	m := newQuadratic()
	prec := newPrecision()

	phiEnd := 20.0
	phiStop, err := FindPhiStop(m, prec, phiEnd)
	if err != nil {
		t.Fatalf("FindPhiStop: %v", err)
	}
	if math.Abs(phiStop-(phiEnd-prec.EndDPhi)) > 1e-12 {
		t.Errorf("phi_stop = %v, want phiEnd - %v", phiStop, prec.EndDPhi)
	}
}

func TestFindPhiPivot_Quadratic(t *testing.T) {
	if testing.Short() {
		t.Skip("long background integration")
	}

	m2 := 1.5e-12
	m := &model.PotentialModel{
		Shape:   model.Polynomial,
		V0:      6.0e-14,
		V1:      -4.2e-13,
		V2:      m2,
		Center:  29.7,
		WithEnd: true,
	}
	prec := newPrecision()

	pivot, err := FindPhiPivot(m, prec, 29.7, 50.0)
	if err != nil {
		t.Fatalf("FindPhiPivot: %v", err)
	}

	// roughly 50 e-folds before the end of this quadratic: phi around
	// 30 - sqrt(4*50) ~ 16
	if pivot < 13. || pivot > 19. {
		t.Errorf("phi_pivot = %v, want around 16", pivot)
	}

	eps, err := m.Epsilon(pivot)
	if err != nil {
		t.Fatalf("Epsilon: %v", err)
	}
	if eps > 0.02 {
		t.Errorf("epsilon at the pivot = %v, should be deep in slow roll", eps)
	}
}
