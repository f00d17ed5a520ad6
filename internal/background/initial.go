package background

import (
	"fmt"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/model"
)

// FindInitialState returns a background state early enough that every
// observable mode is still deep inside the horizon, aH <= aHIni, with
// the scale factor normalized so that a = aPivot when phi = phiPivot.
//
// For the first-order Hubble parametrization a single exact backward
// integration suffices. For the potential parametrization the backward
// solution is only the approximate slow-roll one, so each backward
// guess is verified with an attractor search and an exact forward
// pass; if the guess lands too late, the search backs up further and
// iterates. The approximation therefore never leaks into the final
// result.
func FindInitialState(dyn model.Dynamics, prec *config.Precision, aHIni, aPivot, phiPivot float64) (State, error) {
	m, ok := dyn.(*model.PotentialModel)
	if !ok {
		s := State{A: aPivot, Phi: phiPivot}
		if err := Evolve(dyn, prec, &s, TargetAH, aHIni, true, model.Backward); err != nil {
			return State{}, err
		}
		return State{A: s.A, Phi: s.Phi}, nil
	}

	s := State{A: aPivot, Phi: phiPivot}
	for iter := 0; ; iter++ {
		if iter >= prec.PhiIniMaxIter {
			return State{}, fmt.Errorf("%w: no early-enough field value after %d iterations",
				ErrNoSufficientInflation, iter)
		}

		// slightly below aHIni, leaving the exact solution margin to
		// land under it
		if err := Evolve(m, prec, &s, TargetAH, aHIni*prec.AHIniTarget, true, model.Backward); err != nil {
			return State{}, err
		}
		phiTry := s.Phi

		hTry, dphidtTry, err := FindAttractor(m, prec, phiTry, prec.AttractorPrecisionInitial)
		if err != nil {
			return State{}, err
		}

		// normalize a by evolving from a=1 and rescaling
		s = State{A: 1., Phi: phiTry, DPhi: dphidtTry}
		if err := Evolve(m, prec, &s, TargetPhi, phiPivot, true, model.Forward); err != nil {
			return State{}, err
		}
		aTry := aPivot / s.A

		if aTry*hTry <= aHIni {
			return State{A: aTry, Phi: phiTry, DPhi: aTry * dphidtTry}, nil
		}

		// not early enough: back up again from here
		s = State{A: aTry, Phi: phiTry}
	}
}
