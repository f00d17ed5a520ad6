package spectrum

import (
	"fmt"
	"math"

	"github.com/san-kum/primordial/internal/config"
)

type analyticMode struct {
	icSize    int
	nonZero   []bool
	amplitude []float64
	tilt      []float64
	running   []float64
}

func newAnalyticMode(icSize int) *analyticMode {
	n := PairCount(icSize)
	return &analyticMode{
		icSize:    icSize,
		nonZero:   make([]bool, n),
		amplitude: make([]float64, n),
		tilt:      make([]float64, n),
		running:   make([]float64, n),
	}
}

// AnalyticSpectrum is the power-law parametrization: for every
// non-zero pair of initial conditions,
//
//	P(k) = A (k/k_pivot)^(n-1) exp(alpha/2 ln^2(k/k_pivot)).
//
// The adiabatic mode comes first; isocurvature modes follow in
// configuration order. The tensor tilt is stored shifted by one so
// that the same expression applies (the conventional n_t plays the
// role of n_s - 1).
type AnalyticSpectrum struct {
	kPivot float64
	scalar *analyticMode
	tensor *analyticMode
}

// NewAnalyticSpectrum condenses the configured amplitudes, tilts and
// runnings into per-pair coefficients.
func NewAnalyticSpectrum(cfg *config.Config) (*AnalyticSpectrum, error) {
	ac := &cfg.Analytic
	icSize := 1 + len(ac.Isocurvature)

	s := &AnalyticSpectrum{
		kPivot: cfg.KPivot,
		scalar: newAnalyticMode(icSize),
	}

	// diagonal coefficients
	if err := s.scalar.setDiagonal(0, ac.As, ac.Ns, ac.AlphaS); err != nil {
		return nil, fmt.Errorf("adiabatic mode: %w", err)
	}
	for i, iso := range ac.Isocurvature {
		if err := s.scalar.setDiagonal(1+i, ac.As*iso.F*iso.F, iso.N, iso.Alpha); err != nil {
			return nil, fmt.Errorf("isocurvature mode %s: %w", iso.Mode, err)
		}
	}

	// correlations with the adiabatic mode
	for i, iso := range ac.Isocurvature {
		if iso.CAd == 0. {
			continue
		}
		s.scalar.setCorrelation(0, 1+i, iso.CAd, iso.NAd, iso.AlphaAd)
	}

	if cfg.Tensors {
		s.tensor = newAnalyticMode(1)
		if err := s.tensor.setDiagonal(0, ac.As*ac.R, ac.Nt+1., ac.AlphaT); err != nil {
			return nil, fmt.Errorf("tensor mode: %w", err)
		}
	}

	return s, nil
}

func (m *analyticMode) setDiagonal(ic int, amplitude, tilt, running float64) error {
	if amplitude <= 0. {
		return fmt.Errorf("amplitude must be positive, got %g", amplitude)
	}
	pair := PairIndex(ic, ic, m.icSize)
	m.nonZero[pair] = true
	m.amplitude[pair] = amplitude
	m.tilt[pair] = tilt
	m.running[pair] = running
	return nil
}

func (m *analyticMode) setCorrelation(i1, i2 int, c, tilt, running float64) {
	pair := PairIndex(i1, i2, m.icSize)
	d1 := PairIndex(i1, i1, m.icSize)
	d2 := PairIndex(i2, i2, m.icSize)
	m.nonZero[pair] = true
	m.amplitude[pair] = c * math.Sqrt(m.amplitude[d1]*m.amplitude[d2])
	m.tilt[pair] = 0.5*(m.tilt[d1]+m.tilt[d2]) + tilt
	m.running[pair] = 0.5*(m.running[d1]+m.running[d2]) + running
}

func (s *AnalyticSpectrum) modeCoefficients(m Mode) *analyticMode {
	if m == Tensor {
		return s.tensor
	}
	return s.scalar
}

// Pair evaluates the spectrum of one initial-condition pair at k, in
// linear representation.
func (s *AnalyticSpectrum) Pair(m Mode, pair int, k float64) float64 {
	mc := s.modeCoefficients(m)
	if mc == nil || !mc.nonZero[pair] {
		return 0.
	}
	lnRatio := math.Log(k / s.kPivot)
	return mc.amplitude[pair] * math.Exp((mc.tilt[pair]-1.)*lnRatio+
		0.5*mc.running[pair]*lnRatio*lnRatio)
}

// Fill tabulates the spectrum over the table grid and attaches itself
// as the out-of-range fallback. Correlation coefficients are clamped
// to [-1,1] so the tabulated matrix stays positive definite even when
// tilts drive the correlation past unity away from the pivot.
func (s *AnalyticSpectrum) Fill(t *Table) error {
	modes := []Mode{Scalar}
	if s.tensor != nil {
		modes = append(modes, Tensor)
	}

	for _, m := range modes {
		mc := s.modeCoefficients(m)
		for ik, lnk := range t.LnK {
			k := math.Exp(lnk)
			for i1 := 0; i1 < mc.icSize; i1++ {
				for i2 := i1; i2 < mc.icSize; i2++ {
					pair := PairIndex(i1, i2, mc.icSize)
					if !mc.nonZero[pair] {
						continue
					}
					pk := s.Pair(m, pair, k)
					var value float64
					if i1 == i2 {
						value = math.Log(pk)
					} else {
						norm := math.Sqrt(s.Pair(m, PairIndex(i1, i1, mc.icSize), k) *
							s.Pair(m, PairIndex(i2, i2, mc.icSize), k))
						value = clamp(pk/norm, -1., 1.)
					}
					if err := t.Set(m, i1, i2, ik, value); err != nil {
						return err
					}
				}
			}
		}
	}

	t.analytic = s
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
