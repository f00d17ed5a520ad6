package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultKPivot = 0.05
	DefaultKMin   = 1e-5
	DefaultKMax   = 10.0
)

type Config struct {
	// Kind selects the spectrum parametrization: analytic,
	// inflation_potential, inflation_potential_end, inflation_hubble or
	// external.
	Kind string `yaml:"kind"`

	KPivot float64 `yaml:"k_pivot"`
	KMin   float64 `yaml:"k_min"`
	KMax   float64 `yaml:"k_max"`

	// Tensors enables the tensor mode on top of the curvature mode.
	Tensors bool `yaml:"tensors"`

	Potential PotentialConfig `yaml:"potential"`
	Hubble    HubbleConfig    `yaml:"hubble"`
	Analytic  AnalyticConfig  `yaml:"analytic"`
	External  ExternalConfig  `yaml:"external"`

	Precision Precision `yaml:"precision"`

	Workers int `yaml:"workers"`
}

type PotentialConfig struct {
	// Shape is polynomial or natural.
	Shape string `yaml:"shape"`

	V0 float64 `yaml:"v0"`
	V1 float64 `yaml:"v1"`
	V2 float64 `yaml:"v2"`
	V3 float64 `yaml:"v3"`
	V4 float64 `yaml:"v4"`

	// PhiPivot is the field value where k_pivot crosses the horizon
	// (inflation_potential). In the inflation_potential_end kind the
	// pivot is derived instead from PhiEnd and LnAHRatio, and the
	// polynomial shape is expanded around PhiEnd.
	PhiPivot  float64 `yaml:"phi_pivot"`
	PhiEnd    float64 `yaml:"phi_end"`
	LnAHRatio float64 `yaml:"ln_ah_ratio"`
}

type HubbleConfig struct {
	H0 float64 `yaml:"h0"`
	H1 float64 `yaml:"h1"`
	H2 float64 `yaml:"h2"`
	H3 float64 `yaml:"h3"`
	H4 float64 `yaml:"h4"`

	PhiPivot float64 `yaml:"phi_pivot"`
}

// AnalyticConfig holds the amplitudes and tilts of the power-law
// parametrization. Amplitudes refer to the pivot scale KPivot.
type AnalyticConfig struct {
	As     float64 `yaml:"a_s"`
	Ns     float64 `yaml:"n_s"`
	AlphaS float64 `yaml:"alpha_s"`

	R      float64 `yaml:"r"`
	Nt     float64 `yaml:"n_t"`
	AlphaT float64 `yaml:"alpha_t"`

	Isocurvature []IsocurvatureConfig `yaml:"isocurvature"`
}

// IsocurvatureConfig describes one isocurvature mode of the analytic
// parametrization: its fractional amplitude relative to the curvature
// mode and its correlation with it, each with a power-law scale
// dependence around the pivot.
type IsocurvatureConfig struct {
	// Mode is one of bi, cdi, nid, niv.
	Mode string `yaml:"mode"`

	F     float64 `yaml:"f"`
	N     float64 `yaml:"n"`
	Alpha float64 `yaml:"alpha"`

	CAd     float64 `yaml:"c_ad"`
	NAd     float64 `yaml:"n_ad"`
	AlphaAd float64 `yaml:"alpha_ad"`
}

// ExternalConfig configures the external-command parametrization: the
// command is run through the shell and must print "k P_s(k)" or
// "k P_s(k) P_t(k)" lines, one per wavenumber, sorted by growing k.
type ExternalConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

func DefaultConfig() *Config {
	return &Config{
		Kind:   "analytic",
		KPivot: DefaultKPivot,
		KMin:   DefaultKMin,
		KMax:   DefaultKMax,
		Analytic: AnalyticConfig{
			As: 2.1e-9,
			Ns: 0.965,
		},
		Potential: PotentialConfig{
			Shape: "polynomial",
		},
		Precision: DefaultPrecision(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
