package spectrum

import (
	"fmt"
	"math"
)

// Observables are the spectral parameters at the pivot scale, derived
// from the tabulated spectra by finite differences in ln k: amplitude,
// tilt, running and running of the running for the curvature mode, and
// the tensor-to-scalar ratio with its tilt and running when tensors
// are available.
type Observables struct {
	As     float64 `json:"a_s"`
	Ns     float64 `json:"n_s"`
	AlphaS float64 `json:"alpha_s"`
	BetaS  float64 `json:"beta_s"`

	R      float64 `json:"r,omitempty"`
	Nt     float64 `json:"n_t,omitempty"`
	AlphaT float64 `json:"alpha_t,omitempty"`
}

// ComputeObservables measures the spectral parameters of the adiabatic
// and tensor spectra around the pivot, with steps matching the grid
// density. When the pivot sits close to an edge of the tabulated range,
// the step shrinks so that the widest stencil point, pivot plus or
// minus twice the step, still falls inside the table.
func ComputeObservables(t *Table, perDecade float64) (Observables, error) {
	dlnk := math.Ln10 / perDecade
	lnkp := math.Log(t.KPivot)

	lo, hi := t.LnK[0], t.LnK[len(t.LnK)-1]
	inside := lnkp >= lo && lnkp <= hi
	if inside {
		if m := (lnkp - lo) / 2.; m < dlnk {
			dlnk = m
		}
		if m := (hi - lnkp) / 2.; m < dlnk {
			dlnk = m
		}
	}
	if dlnk <= 0. {
		return Observables{}, fmt.Errorf("%w: pivot k=%e sits on the edge of [%e, %e]",
			ErrOutOfRange, t.KPivot, math.Exp(lo), math.Exp(hi))
	}

	at := func(m Mode, shift float64) (float64, error) {
		x := lnkp + shift
		if inside {
			// absorb rounding of lnkp +- 2 dlnk at the grid edge
			if x < lo {
				x = lo
			}
			if x > hi {
				x = hi
			}
		}
		out, err := t.SpectrumAt(m, Logarithmic, x)
		if err != nil {
			return 0, err
		}
		return out[0], nil
	}

	var obs Observables

	pivot, err := at(Scalar, 0)
	if err != nil {
		return obs, err
	}
	plus, err := at(Scalar, dlnk)
	if err != nil {
		return obs, err
	}
	minus, err := at(Scalar, -dlnk)
	if err != nil {
		return obs, err
	}
	plusplus, err := at(Scalar, 2.*dlnk)
	if err != nil {
		return obs, err
	}
	minusminus, err := at(Scalar, -2.*dlnk)
	if err != nil {
		return obs, err
	}

	obs.As = math.Exp(pivot)
	obs.Ns = (plus-minus)/(2.*dlnk) + 1.
	obs.AlphaS = (plus - 2.*pivot + minus) / (dlnk * dlnk)
	obs.BetaS = (plusplus - 2.*plus + 2.*minus - minusminus) / (dlnk * dlnk * dlnk)

	if !t.HasTensors() {
		return obs, nil
	}

	pivotT, err := at(Tensor, 0)
	if err != nil {
		return obs, err
	}
	plusT, err := at(Tensor, dlnk)
	if err != nil {
		return obs, err
	}
	minusT, err := at(Tensor, -dlnk)
	if err != nil {
		return obs, err
	}

	obs.R = math.Exp(pivotT) / obs.As
	obs.Nt = (plusT - minusT) / (2. * dlnk)
	obs.AlphaT = (plusT - 2.*pivotT + minusT) / (dlnk * dlnk)

	return obs, nil
}
