package background

import (
	"fmt"
	"math"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/model"
	"github.com/san-kum/primordial/internal/odeint"
)

// Evolve integrates the background from s until the target quantity
// reaches stop, forward or backward in conformal time. The integration
// proceeds in macro-steps scaled to the expansion timescale; before
// each macro-step the target value after the step is predicted, and
// once the prediction overshoots the loop exits and a single
// trapezoidal step lands on the target. With checkEpsilon set, the
// evolution fails as soon as epsilon crosses 1.
//
// For second-order backgrounds (potential parametrization), backward
// integration follows the first-order slow-roll reduction instead: the
// result is approximate, never touches s.DPhi, and is only meant to
// locate plausible early times that a later forward pass will verify.
func Evolve(dyn model.Dynamics, prec *config.Precision, s *State, tg Target, stop float64, checkEpsilon bool, dir model.Direction) error {
	if tg == TargetEnd {
		if dyn.Kind() != model.ByPotentialWithEnd {
			return ErrEndUnsupported
		}
		stop = 0.
	}

	dim := dyn.BackgroundDim(dir)
	secondOrder := dim > model.IndexDPhi

	y := s.pack(dim)
	dy := make([]float64, dim)
	w := odeint.NewWorkspace(dim)
	sign := dir.Sign()

	derivs := func(_ float64, y, dy []float64) error {
		_, err := dyn.DeriveBackground(dir, y, dy)
		return err
	}

	var epsilon float64
	if checkEpsilon {
		eps, err := dyn.Epsilon(s.Phi)
		if err != nil {
			return err
		}
		epsilon = eps
	}

	tau := 0.
	aux, err := dyn.DeriveBackground(dir, y, dy)
	if err != nil {
		return err
	}
	dtau := macroStep(prec, dir, secondOrder, aux.AH, y, dy)
	quantity := predict(tg, aux.AH, y, dy, dtau)

	for sign*(quantity-stop) < 0. {
		if err := dyn.Check(y[model.IndexPhi]); err != nil {
			return err
		}

		if tau != 0. && math.Abs(dtau/tau) < prec.SmallestVariation {
			return fmt.Errorf("%w: relative step %e at tau=%e",
				ErrStepSizeCollapse, dtau/tau, tau)
		}

		if err := w.Integrate(derivs, tau, tau+dtau, y, prec.TolIntegration); err != nil {
			return err
		}
		tau += dtau

		if checkEpsilon {
			epsOld := epsilon
			eps, err := dyn.Epsilon(y[model.IndexPhi])
			if err != nil {
				return err
			}
			epsilon = eps
			if epsilon > 1. && epsOld <= 1. {
				return fmt.Errorf("%w: epsilon crosses 1 at phi=%g",
					ErrInflationBroken, y[model.IndexPhi])
			}
		}

		aux, err = dyn.DeriveBackground(dir, y, dy)
		if err != nil {
			return err
		}
		dtau = macroStep(prec, dir, secondOrder, aux.AH, y, dy)
		quantity = predict(tg, aux.AH, y, dy, dtau)
	}

	// trapezoidal landing step: exact for TargetPhi, close enough for
	// the others
	switch tg {
	case TargetAH:
		dtau = (stop/aux.AH - 1.) / aux.AH
	case TargetPhi:
		dtau = (stop - y[model.IndexPhi]) / dy[model.IndexPhi]
	case TargetEnd:
		if err := dyn.Check(y[model.IndexPhi]); err != nil {
			return err
		}
		a2 := y[model.IndexA] * y[model.IndexA]
		q := (-aux.AH*aux.AH + 4.*math.Pi*y[model.IndexDPhi]*y[model.IndexDPhi]) / a2
		// dq/dtau = 8 pi phi' phi'' / a^2, exactly
		dtau = -q / (8. * math.Pi / a2 * dy[model.IndexPhi] * dy[model.IndexDPhi])
	}

	y[model.IndexA] += dy[model.IndexA] * dtau
	y[model.IndexPhi] += dy[model.IndexPhi] * dtau
	if dir == model.Forward && secondOrder {
		y[model.IndexDPhi] += dy[model.IndexDPhi] * dtau
	}

	s.unpack(y)
	return nil
}

func macroStep(prec *config.Precision, dir model.Direction, secondOrder bool, aH float64, y, dy []float64) float64 {
	if dir == model.Forward && secondOrder {
		ts := 1. / aH
		if dy[model.IndexDPhi] != 0. {
			if t := math.Abs(y[model.IndexDPhi] / dy[model.IndexDPhi]); t < ts {
				ts = t
			}
		}
		return prec.BgStepsize * ts
	}
	return dir.Sign() * prec.BgStepsize / aH
}

// predict estimates the target quantity after a step dtau. For
// TargetEnd the quantity is -d2a/dt2 /a, advanced with its exact slope
// 8 pi phi' phi'' / a^2: the loop then exits one step before the
// acceleration stops, and the landing step reaches the end point
// without ever leaving the monotonic branch of the potential.
func predict(tg Target, aH float64, y, dy []float64, dtau float64) float64 {
	switch tg {
	case TargetAH:
		return aH + aH*aH*dtau
	case TargetPhi:
		return y[model.IndexPhi] + dy[model.IndexPhi]*dtau
	default:
		a2 := y[model.IndexA] * y[model.IndexA]
		q := (-aH*aH + 4.*math.Pi*y[model.IndexDPhi]*y[model.IndexDPhi]) / a2
		return q + 8.*math.Pi/a2*dy[model.IndexPhi]*dy[model.IndexDPhi]*dtau
	}
}
