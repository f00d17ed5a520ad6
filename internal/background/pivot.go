package background

import (
	"math"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/model"
)

// FindPhiStop returns the field value at which the first slow-roll
// parameter reaches 1. When epsilon is still below 1 just before
// phiEnd, inflation is taken to stop abruptly there (hybrid-like
// models) and phiEnd minus a tiny shift is returned. The shift also
// protects potentials that are singular exactly at phiEnd.
func FindPhiStop(dyn model.Dynamics, prec *config.Precision, phiEnd float64) (float64, error) {
	dphi := prec.EndDPhi

	eps, err := dyn.Epsilon(phiEnd - dphi)
	if err != nil {
		return 0, err
	}
	if eps < 1. {
		return phiEnd - dphi, nil
	}

	// bracket by logarithmic expansion, then bisect
	for eps > 1. {
		dphi *= prec.EndLogstep
		eps, err = dyn.Epsilon(phiEnd - dphi)
		if err != nil {
			return 0, err
		}
	}

	left := phiEnd - dphi
	right := phiEnd - dphi/prec.EndLogstep
	var mid float64
	for {
		mid = 0.5 * (left + right)
		eps, err = dyn.Epsilon(mid)
		if err != nil {
			return 0, err
		}
		if eps < 1. {
			left = mid
		} else {
			right = mid
		}
		if math.Abs((right-left)/mid) <= prec.PhiStopPrecision {
			return mid, nil
		}
	}
}

// FindPhiPivot locates the field value at which the pivot scale
// crosses the horizon, for potentials where inflation ends naturally.
// The pivot is placed lnAHRatio e-folds of aH before the end of
// accelerated expansion:
//
//  1. find the last field value with epsilon = 0.1, and the attractor
//     there;
//  2. integrate forward to the end of inflation to calibrate the
//     ratio between aH at the end and H at the epsilon = 0.1 point;
//  3. shoot backward along the slow-roll solution by the requested
//     number of e-folds (with margin), refine the attractor at the
//     landing point, and recalibrate with an exact forward pass;
//  4. integrate forward from the landing point until aH is exactly
//     lnAHRatio e-folds below its end value.
func FindPhiPivot(m *model.PotentialModel, prec *config.Precision, phiEnd, lnAHRatio float64) (float64, error) {
	// bracket the last field value where epsilon = 0.1
	dphi := prec.EndDPhi
	var (
		eps float64
		err error
	)
	for {
		dphi *= prec.EndLogstep
		eps, err = m.Epsilon(phiEnd - dphi)
		if err != nil {
			return 0, err
		}
		if eps <= 0.1 {
			break
		}
	}
	left := phiEnd - dphi
	right := phiEnd - dphi/prec.EndLogstep
	var phiSmallEps float64
	for {
		phiSmallEps = 0.5 * (left + right)
		eps, err = m.Epsilon(phiSmallEps)
		if err != nil {
			return 0, err
		}
		if eps < 0.1 {
			left = phiSmallEps
		} else {
			right = phiSmallEps
		}
		if math.Abs(eps-0.1) <= 0.01 {
			break
		}
	}

	hSmall, dphidtSmall, err := FindAttractor(m, prec, phiSmallEps, prec.AttractorPrecisionInitial)
	if err != nil {
		return 0, err
	}

	// calibrate aH at the end of inflation relative to H here
	s := State{A: 1., Phi: phiSmallEps, DPhi: dphidtSmall}
	if err := Evolve(m, prec, &s, TargetEnd, 0., false, model.Forward); err != nil {
		return 0, err
	}
	aHEnd, err := AH(m, &s, model.Forward)
	if err != nil {
		return 0, err
	}
	aHRatioSmall := aHEnd / hSmall

	// shoot backward by the requested amount plus two safety e-folds
	s = State{A: 1., Phi: phiSmallEps}
	if err := Evolve(m, prec, &s, TargetAH,
		hSmall/math.Exp(lnAHRatio+2.)*aHRatioSmall, true, model.Backward); err != nil {
		return 0, err
	}
	phiTry := s.Phi

	hTry, dphidtTry, err := FindAttractor(m, prec, phiTry, prec.AttractorPrecisionInitial)
	if err != nil {
		return 0, err
	}

	// exact forward calibration from the landing point
	s = State{A: 1., Phi: phiTry, DPhi: dphidtTry}
	if err := Evolve(m, prec, &s, TargetEnd, 0., false, model.Forward); err != nil {
		return 0, err
	}
	aHEnd, err = AH(m, &s, model.Forward)
	if err != nil {
		return 0, err
	}
	aHRatioTry := aHEnd / hTry

	s = State{A: 1., Phi: phiTry, DPhi: dphidtTry}
	if err := Evolve(m, prec, &s, TargetAH,
		hTry*aHRatioTry/math.Exp(lnAHRatio), false, model.Forward); err != nil {
		return 0, err
	}
	return s.Phi, nil
}
