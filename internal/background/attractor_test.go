package background

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/primordial/internal/model"
)

func TestFindAttractor_NearSlowRoll(t *testing.T) {
	m := newQuadratic()
	prec := newPrecision()

	h0, dphidt0, err := FindAttractor(m, prec, 15.0, prec.AttractorPrecisionPivot)
	if err != nil {
		t.Fatalf("FindAttractor: %v", err)
	}

	sr, err := m.SlowRollVelocity(15.0)
	if err != nil {
		t.Fatalf("SlowRollVelocity: %v", err)
	}

	// for this flat a potential, the attractor sits within a couple of
	// percent of the slow-roll prediction
	if math.Abs(dphidt0/sr-1.) > 0.02 {
		t.Errorf("attractor dphi/dt = %e, slow roll predicts %e", dphidt0, sr)
	}

	v, _, _ := m.Potential(15.0)
	hMin := math.Sqrt((8. * math.Pi / 3.) * v)
	if h0 < hMin || h0 > 1.01*hMin {
		t.Errorf("H = %e out of range [%e, %e]", h0, hMin, 1.01*hMin)
	}
	if dphidt0 <= 0 {
		t.Errorf("field must roll toward larger phi, got dphi/dt = %e", dphidt0)
	}
}

func TestFindAttractor_DoesNotConverge(t *testing.T) {
	m := newQuadratic()
	prec := newPrecision()

	// an absurd precision cannot be met within the iteration cap
	_, _, err := FindAttractor(m, prec, 15.0, 1e-16)
	if !errors.Is(err, ErrAttractorNotFound) {
		t.Fatalf("expected ErrAttractorNotFound, got %v", err)
	}
}

func TestFindInitialState_Potential(t *testing.T) {
	m := newQuadratic()
	prec := newPrecision()

	hPivot, _, err := FindAttractor(m, prec, 15.0, prec.AttractorPrecisionPivot)
	if err != nil {
		t.Fatalf("FindAttractor: %v", err)
	}

	kPivot := 0.05
	aPivot := kPivot / hPivot
	aHIni := 0.04 / prec.RatioMin

	ini, err := FindInitialState(m, prec, aHIni, aPivot, 15.0)
	if err != nil {
		t.Fatalf("FindInitialState: %v", err)
	}

	if ini.Phi >= 15.0 {
		t.Errorf("initial field value should precede the pivot, got %v", ini.Phi)
	}

	aH, err := AH(m, &ini, model.Forward)
	if err != nil {
		t.Fatalf("AH: %v", err)
	}
	if aH > aHIni {
		t.Errorf("initial aH = %e exceeds the requested bound %e", aH, aHIni)
	}

	// the exact forward solution must recover the pivot normalization
	s := ini
	if err := Evolve(m, prec, &s, TargetPhi, 15.0, true, model.Forward); err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if math.Abs(s.A/aPivot-1.) > 0.01 {
		t.Errorf("a at pivot = %e, want %e within 1%%", s.A, aPivot)
	}
}

func TestFindInitialState_Hubble(t *testing.T) {
	m := &model.HubbleModel{H0: 1.2e-5, H1: -1e-7}
	prec := newPrecision()

	aPivot := 0.05 / m.H0
	aHIni := 0.04 / prec.RatioMin

	ini, err := FindInitialState(m, prec, aHIni, aPivot, 0.0)
	if err != nil {
		t.Fatalf("FindInitialState: %v", err)
	}

	aH, err := AH(m, &ini, model.Forward)
	if err != nil {
		t.Fatalf("AH: %v", err)
	}
	if math.Abs(aH/aHIni-1.) > 0.05 {
		t.Errorf("initial aH = %e, want %e within 5%%", aH, aHIni)
	}
}

func TestFindInitialState_InsufficientInflation(t *testing.T) {
	// steep region: the pivot sits so close to the end of the
	// monotonic branch that backing up runs into trouble long before
	// enough e-folds accumulate
	m2 := 1.5e-12
	m := &model.PotentialModel{
		Shape:  model.Polynomial,
		V0:     0.5 * m2 * 0.04,
		V1:     -m2 * 0.2,
		V2:     m2,
		Center: 29.8,
	}
	prec := newPrecision()
	prec.PhiIniMaxIter = 3

	_, err := FindInitialState(m, prec, 1e-30, 1., 29.8)
	if err == nil {
		t.Fatal("expected an error for a too-short inflationary stretch")
	}
}
