package config

// Precision gathers the numerical tuning parameters of the inflation
// solver. The defaults are safe for smooth potentials; tighten
// TolIntegration and TolCurvature for featureful ones.
type Precision struct {
	// TolIntegration is the relative tolerance of the adaptive
	// background and perturbation integrations.
	TolIntegration float64 `yaml:"tol_integration"`

	// BgStepsize scales the background macro-step relative to the
	// instantaneous expansion timescale 1/aH.
	BgStepsize float64 `yaml:"bg_stepsize"`

	// PtStepsize scales the perturbation macro-step relative to the
	// oscillation period of the mode function.
	PtStepsize float64 `yaml:"pt_stepsize"`

	// TolCurvature is the relative variation of the curvature spectrum
	// per e-fold under which a mode counts as frozen.
	TolCurvature float64 `yaml:"tol_curvature"`

	// AttractorPrecisionPivot and AttractorPrecisionInitial bound the
	// relative change of dphi/dt between shooting passes when searching
	// the attractor at the pivot and at the initial time.
	AttractorPrecisionPivot   float64 `yaml:"attractor_precision_pivot"`
	AttractorPrecisionInitial float64 `yaml:"attractor_precision_initial"`
	AttractorMaxIter          int     `yaml:"attractor_max_iter"`

	// PhiIniMaxIter bounds the backward/forward iterations when
	// searching an early-enough initial field value.
	PhiIniMaxIter int `yaml:"phi_ini_max_iter"`

	// RatioMin requires aH_ini <= k_min/RatioMin; RatioMax requires the
	// background to survive until aH = k_max/RatioMax.
	RatioMin float64 `yaml:"ratio_min"`
	RatioMax float64 `yaml:"ratio_max"`

	// AHIniTarget shifts the backward target below aH_ini so that the
	// exact forward solution has margin to land under it.
	AHIniTarget float64 `yaml:"ah_ini_target"`

	// SmallestVariation is the relative time step under which the
	// background integration is considered stuck.
	SmallestVariation float64 `yaml:"smallest_variation"`

	// EndDPhi and EndLogstep control the bracketing of the field value
	// ending inflation; PhiStopPrecision terminates the bisection.
	EndDPhi          float64 `yaml:"end_dphi"`
	EndLogstep       float64 `yaml:"end_logstep"`
	PhiStopPrecision float64 `yaml:"phi_stop_precision"`

	// KPerDecade sets the density of the wavenumber grid.
	KPerDecade float64 `yaml:"k_per_decade"`
}

func DefaultPrecision() Precision {
	return Precision{
		TolIntegration:            1e-4,
		BgStepsize:                0.8,
		PtStepsize:                0.01,
		TolCurvature:              1e-4,
		AttractorPrecisionPivot:   1e-3,
		AttractorPrecisionInitial: 0.1,
		AttractorMaxIter:          10,
		PhiIniMaxIter:             10,
		RatioMin:                  100.,
		RatioMax:                  1. / 50.,
		AHIniTarget:               0.9,
		SmallestVariation:         1e-11,
		EndDPhi:                   1e-10,
		EndLogstep:                10.,
		PhiStopPrecision:          1e-6,
		KPerDecade:                10.,
	}
}
