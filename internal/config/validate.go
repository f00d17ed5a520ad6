package config

import "fmt"

var validKinds = map[string]bool{
	"analytic":                true,
	"inflation_potential":     true,
	"inflation_potential_end": true,
	"inflation_hubble":        true,
	"external":                true,
}

var validIsocurvature = map[string]bool{
	"bi":  true,
	"cdi": true,
	"nid": true,
	"niv": true,
}

func (c *Config) Validate() error {
	if !validKinds[c.Kind] {
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	if c.KMin <= 0 {
		return fmt.Errorf("k_min must be positive, got %g", c.KMin)
	}
	if c.KMax <= c.KMin {
		return fmt.Errorf("k_max (%g) must exceed k_min (%g)", c.KMax, c.KMin)
	}
	if c.KPivot <= 0 {
		return fmt.Errorf("k_pivot must be positive, got %g", c.KPivot)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	switch c.Kind {
	case "analytic":
		if c.Analytic.As <= 0 {
			return fmt.Errorf("a_s must be positive, got %g", c.Analytic.As)
		}
		if c.Analytic.R < 0 {
			return fmt.Errorf("r must not be negative, got %g", c.Analytic.R)
		}
		for _, iso := range c.Analytic.Isocurvature {
			if !validIsocurvature[iso.Mode] {
				return fmt.Errorf("unknown isocurvature mode %q", iso.Mode)
			}
			if iso.F < 0 {
				return fmt.Errorf("isocurvature %s: f must not be negative, got %g", iso.Mode, iso.F)
			}
			if iso.CAd < -1 || iso.CAd > 1 {
				return fmt.Errorf("isocurvature %s: c_ad must lie in [-1,1], got %g", iso.Mode, iso.CAd)
			}
		}
	case "inflation_potential", "inflation_potential_end":
		if c.Potential.Shape != "polynomial" && c.Potential.Shape != "natural" {
			return fmt.Errorf("unknown potential shape %q", c.Potential.Shape)
		}
		if c.Potential.V0 <= 0 {
			return fmt.Errorf("v0 must be positive, got %g", c.Potential.V0)
		}
		if c.Kind == "inflation_potential_end" && c.Potential.LnAHRatio <= 0 {
			return fmt.Errorf("ln_ah_ratio must be positive, got %g", c.Potential.LnAHRatio)
		}
	case "inflation_hubble":
		if c.Hubble.H0 <= 0 {
			return fmt.Errorf("h0 must be positive, got %g", c.Hubble.H0)
		}
	case "external":
		if c.External.Command == "" {
			return fmt.Errorf("external command must not be empty")
		}
	}

	return c.Precision.Validate()
}

func (p *Precision) Validate() error {
	if p.TolIntegration <= 0 {
		return fmt.Errorf("tol_integration must be positive, got %g", p.TolIntegration)
	}
	if p.BgStepsize <= 0 || p.PtStepsize <= 0 {
		return fmt.Errorf("stepsizes must be positive, got bg %g, pt %g", p.BgStepsize, p.PtStepsize)
	}
	if p.TolCurvature <= 0 {
		return fmt.Errorf("tol_curvature must be positive, got %g", p.TolCurvature)
	}
	if p.AttractorMaxIter <= 0 || p.PhiIniMaxIter <= 0 {
		return fmt.Errorf("iteration caps must be positive, got attractor %d, phi_ini %d",
			p.AttractorMaxIter, p.PhiIniMaxIter)
	}
	if p.RatioMin <= 1 {
		return fmt.Errorf("ratio_min must exceed 1, got %g", p.RatioMin)
	}
	if p.RatioMax <= 0 || p.RatioMax >= 1 {
		return fmt.Errorf("ratio_max must lie in (0,1), got %g", p.RatioMax)
	}
	if p.AHIniTarget <= 0 || p.AHIniTarget >= 1 {
		return fmt.Errorf("ah_ini_target must lie in (0,1), got %g", p.AHIniTarget)
	}
	if p.EndLogstep <= 1 {
		return fmt.Errorf("end_logstep must exceed 1, got %g", p.EndLogstep)
	}
	if p.KPerDecade <= 0 {
		return fmt.Errorf("k_per_decade must be positive, got %g", p.KPerDecade)
	}
	return nil
}
