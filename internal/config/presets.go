package config

var Presets = map[string]*Config{
	// power-law spectrum with Planck 2018 best-fit amplitude and tilt
	"planck": {
		Kind:    "analytic",
		KPivot:  0.05,
		KMin:    1e-5,
		KMax:    10.0,
		Tensors: true,
		Analytic: AnalyticConfig{
			As: 2.1e-9,
			Ns: 0.9649,
			R:  0.05,
			Nt: -0.00625,
		},
		Precision: DefaultPrecision(),
	},
	// quadratic potential written as a quartic expansion around the pivot
	"chaotic": {
		Kind:    "inflation_potential",
		KPivot:  0.05,
		KMin:    1e-5,
		KMax:    10.0,
		Tensors: true,
		Potential: PotentialConfig{
			Shape:    "polynomial",
			V0:       1.6875e-10,
			V1:       -2.25e-11,
			V2:       1.5e-12,
			PhiPivot: 15.0,
		},
		Precision: DefaultPrecision(),
	},
	// same quadratic potential, pivot placed by e-fold count from the end
	"chaotic-end": {
		Kind:    "inflation_potential_end",
		KPivot:  0.05,
		KMin:    1e-5,
		KMax:    10.0,
		Tensors: true,
		Potential: PotentialConfig{
			Shape:     "polynomial",
			V0:        6.0e-14,
			V1:        -4.2e-13,
			V2:        1.5e-12,
			PhiEnd:    29.7,
			LnAHRatio: 50.0,
		},
		Precision: DefaultPrecision(),
	},
	"natural": {
		Kind:    "inflation_potential",
		KPivot:  0.05,
		KMin:    1e-5,
		KMax:    10.0,
		Tensors: true,
		Potential: PotentialConfig{
			Shape:    "natural",
			V0:       1e-10,
			V1:       10.0,
			PhiPivot: 7.0,
		},
		Precision: DefaultPrecision(),
	},
	"hubble-quadratic": {
		Kind:    "inflation_hubble",
		KPivot:  0.05,
		KMin:    1e-5,
		KMax:    10.0,
		Tensors: true,
		Hubble: HubbleConfig{
			H0:       1.2e-5,
			H1:       -1e-7,
			PhiPivot: 0.0,
		},
		Precision: DefaultPrecision(),
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
