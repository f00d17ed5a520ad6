package spectrum

import (
	"fmt"
	"math"

	"github.com/san-kum/primordial/internal/background"
	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/model"
	"github.com/san-kum/primordial/internal/odeint"
)

// perturbation components appended after the background block
const (
	offKsiRe = iota
	offKsiIm
	offDKsiRe
	offDKsiIm
	offAhRe
	offAhIm
	offDAhRe
	offDAhIm
	pertSize
)

// oneK integrates the Mukhanov-Sasaki variable ksi (scalar) and the
// rescaled tensor amplitude ah for a single wavenumber, coupled to the
// background, starting from Bunch-Davies vacuum deep inside the
// horizon. It returns the curvature and tensor power at freeze-out,
// reached once the mode sits far outside the horizon and the curvature
// power stops drifting.
func oneK(dyn model.Dynamics, prec *config.Precision, ini background.State, k float64) (curvature, tensor float64, err error) {
	base := dyn.BackgroundDim(model.Forward)
	dim := base + pertSize

	y := make([]float64, dim)
	dy := make([]float64, dim)
	y[model.IndexA] = ini.A
	y[model.IndexPhi] = ini.Phi
	if base > model.IndexDPhi {
		y[model.IndexDPhi] = ini.DPhi
	}

	// Bunch-Davies vacuum, with the arbitrary phase chosen real
	y[base+offKsiRe] = 1. / math.Sqrt(2.*k)
	y[base+offDKsiIm] = -k * y[base+offKsiRe]
	y[base+offAhRe] = 1. / math.Sqrt(2.*k)
	y[base+offDAhIm] = -k * y[base+offAhRe]

	derivs := func(_ float64, y, dy []float64) error {
		aux, err := dyn.DeriveBackground(model.Forward, y, dy)
		if err != nil {
			return err
		}
		ks := -(k*k - aux.ZppOverZ)
		dy[base+offKsiRe] = y[base+offDKsiRe]
		dy[base+offKsiIm] = y[base+offDKsiIm]
		dy[base+offDKsiRe] = ks * y[base+offKsiRe]
		dy[base+offDKsiIm] = ks * y[base+offKsiIm]
		kt := -(k*k - aux.AppOverA)
		dy[base+offAhRe] = y[base+offDAhRe]
		dy[base+offAhIm] = y[base+offDAhIm]
		dy[base+offDAhRe] = kt * y[base+offAhRe]
		dy[base+offDAhIm] = kt * y[base+offAhIm]
		return nil
	}

	w := odeint.NewWorkspace(dim)

	tau := 0.
	if err := derivs(tau, y, dy); err != nil {
		return 0, 0, err
	}
	dtau := pertStep(prec, k, y, dy, base)

	curvature = math.Inf(1)
	for {
		if tau != 0. && dtau/tau < prec.SmallestVariation {
			return 0, 0, fmt.Errorf("%w: relative step %e at k=%e",
				ErrStepSizeCollapse, dtau/tau, k)
		}

		if err := w.Integrate(derivs, tau, tau+dtau, y, prec.TolIntegration); err != nil {
			return 0, 0, err
		}
		tau += dtau

		if err := derivs(tau, y, dy); err != nil {
			return 0, 0, err
		}
		dtau = pertStep(prec, k, y, dy, base)

		aH := dy[model.IndexA] / y[model.IndexA]

		old := curvature
		z := y[model.IndexA] * dy[model.IndexPhi] / aH
		ksi2 := y[base+offKsiRe]*y[base+offKsiRe] + y[base+offKsiIm]*y[base+offKsiIm]
		curvature = k * k * k / (2. * math.Pi * math.Pi) * ksi2 / (z * z)

		// drift of the curvature power per e-fold
		dlnPdN := (curvature - old) / dtau / aH / curvature

		if k/aH < prec.RatioMax && math.Abs(dlnPdN) <= prec.TolCurvature {
			break
		}
	}

	ah2 := y[base+offAhRe]*y[base+offAhRe] + y[base+offAhIm]*y[base+offAhIm]
	tensor = 32. * k * k * k / math.Pi * ah2 / (y[model.IndexA] * y[model.IndexA])

	if curvature <= 0. {
		return 0, 0, fmt.Errorf("%w: curvature P=%e at k=%e", ErrNegativeSpectrum, curvature, k)
	}
	if tensor <= 0. {
		return 0, 0, fmt.Errorf("%w: tensor P=%e at k=%e", ErrNegativeSpectrum, tensor, k)
	}
	return curvature, tensor, nil
}

// pertStep resolves the fastest oscillation of the mode function: a
// fixed fraction of its period, or of 1/k while still deep inside the
// horizon.
func pertStep(prec *config.Precision, k float64, y, dy []float64, base int) float64 {
	freq := math.Sqrt(math.Abs(dy[base+offDKsiRe] / y[base+offKsiRe]))
	return prec.PtStepsize * 2. * math.Pi / math.Max(freq, k)
}
