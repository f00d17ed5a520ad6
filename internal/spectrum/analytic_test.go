package spectrum

import (
	"math"
	"testing"

	"github.com/san-kum/primordial/internal/config"
)

func analyticConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Kind = "analytic"
	cfg.KPivot = 0.05
	cfg.KMin = 1e-3
	cfg.KMax = 1e-1
	cfg.Tensors = true
	cfg.Analytic = config.AnalyticConfig{
		As: 2.1e-9,
		Ns: 0.9649,
		R:  0.1,
		Nt: -0.0125,
		Isocurvature: []config.IsocurvatureConfig{
			{Mode: "cdi", F: 0.5, N: 1.2, CAd: 0.3, NAd: 0.05},
		},
	}
	return cfg
}

func TestAnalyticPair_PowerLaws(t *testing.T) {
	cfg := analyticConfig()
	an, err := NewAnalyticSpectrum(cfg)
	if err != nil {
		t.Fatal(err)
	}

	k := 2. * cfg.KPivot
	ac := &cfg.Analytic

	cases := []struct {
		name string
		mode Mode
		pair int
		want float64
	}{
		{"adiabatic", Scalar, PairIndex(0, 0, 2), ac.As * math.Pow(2., ac.Ns-1.)},
		{"cdi", Scalar, PairIndex(1, 1, 2), ac.As * 0.25 * math.Pow(2., 1.2-1.)},
		{"ad x cdi", Scalar, PairIndex(0, 1, 2),
			0.3 * ac.As * 0.5 * math.Pow(2., 0.5*(ac.Ns+1.2)+0.05-1.)},
		{"tensor", Tensor, 0, ac.As * ac.R * math.Pow(2., ac.Nt)},
	}
	for _, c := range cases {
		got := an.Pair(c.mode, c.pair, k)
		if rel := got/c.want - 1.; math.Abs(rel) > 1e-12 {
			t.Errorf("%s: P = %e, want %e", c.name, got, c.want)
		}
	}
}

func TestAnalyticSpectrum_RejectsNonPositiveAmplitude(t *testing.T) {
	cfg := analyticConfig()
	cfg.Analytic.As = 0.
	if _, err := NewAnalyticSpectrum(cfg); err == nil {
		t.Fatal("expected error for A_s = 0")
	}

	cfg = analyticConfig()
	cfg.Analytic.Isocurvature[0].F = 0.
	if _, err := NewAnalyticSpectrum(cfg); err == nil {
		t.Fatal("expected error for zero isocurvature fraction")
	}
}

func TestAnalyticFill_OutOfRangeFallback(t *testing.T) {
	cfg := analyticConfig()
	an, err := NewAnalyticSpectrum(cfg)
	if err != nil {
		t.Fatal(err)
	}

	lnk := Grid(cfg.KMin, cfg.KMax, cfg.Precision.KPerDecade)
	tab := NewTable(lnk, cfg.KPivot, 2, true)
	if err := an.Fill(tab); err != nil {
		t.Fatal(err)
	}
	if err := tab.Finalize(); err != nil {
		t.Fatal(err)
	}

	// k = 10 lies above the grid; the closed form takes over
	k := 10.
	out, err := tab.SpectrumAt(Scalar, Linear, k)
	if err != nil {
		t.Fatal(err)
	}
	for pair := 0; pair < PairCount(2); pair++ {
		want := an.Pair(Scalar, pair, k)
		if rel := out[pair]/want - 1.; math.Abs(rel) > 1e-12 {
			t.Errorf("pair %d: P = %e, want %e", pair, out[pair], want)
		}
	}

	// logarithmic queries get the correlation coefficient off-diagonal
	logOut, err := tab.SpectrumAt(Scalar, Logarithmic, math.Log(k))
	if err != nil {
		t.Fatal(err)
	}
	wantCorr := 0.3 * math.Pow(k/cfg.KPivot, 0.05)
	if rel := logOut[PairIndex(0, 1, 2)]/wantCorr - 1.; math.Abs(rel) > 1e-12 {
		t.Errorf("correlation = %v, want %v", logOut[PairIndex(0, 1, 2)], wantCorr)
	}
}

func TestAnalyticFill_ClampsCorrelation(t *testing.T) {
	cfg := analyticConfig()
	// a strong relative tilt drives the correlation past unity at the
	// edges of the grid
	cfg.Analytic.Isocurvature[0].CAd = 0.99
	cfg.Analytic.Isocurvature[0].NAd = 1.

	an, err := NewAnalyticSpectrum(cfg)
	if err != nil {
		t.Fatal(err)
	}
	lnk := Grid(cfg.KMin, cfg.KMax, cfg.Precision.KPerDecade)
	tab := NewTable(lnk, cfg.KPivot, 2, false)
	if err := an.Fill(tab); err != nil {
		t.Fatal(err)
	}
	if err := tab.Finalize(); err != nil {
		t.Fatal(err)
	}

	out, err := tab.SpectrumAt(Scalar, Logarithmic, math.Log(cfg.KMax))
	if err != nil {
		t.Fatal(err)
	}
	corr := out[PairIndex(0, 1, 2)]
	if corr < -1.-1e-9 || corr > 1.+1e-9 {
		t.Errorf("correlation %v escaped [-1, 1]", corr)
	}
}
