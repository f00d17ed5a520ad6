package spectrum

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/primordial/internal/config"
)

func externalConfig(t *testing.T, lines string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spectrum.dat")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Kind = "external"
	cfg.KMin = 0.02
	cfg.KMax = 0.5
	cfg.External = config.ExternalConfig{Command: "cat", Args: []string{path}}
	return cfg
}

func powerLawLines(ks []float64, tensors bool) string {
	var out string
	for _, k := range ks {
		ps := 2e-9 * math.Pow(k/0.05, -0.04)
		if tensors {
			out += fmt.Sprintf("%e %e %e\n", k, ps, 0.06*ps)
		} else {
			out += fmt.Sprintf("%e %e\n", k, ps)
		}
	}
	return out
}

func TestLoadExternal_PreservesSampling(t *testing.T) {
	ks := []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1., 2.}
	cfg := externalConfig(t, powerLawLines(ks, true))
	cfg.Tensors = true

	tab, err := LoadExternal(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.LnK) != len(ks) {
		t.Fatalf("len(LnK) = %d, want %d", len(tab.LnK), len(ks))
	}
	if !tab.HasTensors() {
		t.Fatal("tensor mode missing")
	}

	out, err := tab.SpectrumAt(Scalar, Linear, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if rel := out[0]/2e-9 - 1.; math.Abs(rel) > 1e-6 {
		t.Errorf("P_s(k_pivot) = %e, off by %e", out[0], rel)
	}
}

func TestLoadExternal_Errors(t *testing.T) {
	cases := []struct {
		name  string
		lines string
	}{
		{"unsorted", "0.005 1e-9\n0.02 1e-9\n0.01 1e-9\n0.5 1e-9\n1 1e-9\n2 1e-9\n"},
		{"too few samples", "0.01 1e-9\n1 1e-9\n"},
		{"no margin below k_min", "0.02 1e-9\n0.05 1e-9\n1 1e-9\n2 1e-9\n"},
		{"no margin above k_max", "0.005 1e-9\n0.01 1e-9\n0.1 1e-9\n0.5 1e-9\n"},
		{"missing column", "0.005 1e-9\n0.01\n1 1e-9\n2 1e-9\n"},
		{"negative power", "0.005 1e-9\n0.01 -1e-9\n1 1e-9\n2 1e-9\n"},
		{"not a number", "0.005 1e-9\n0.01 nope\n1 1e-9\n2 1e-9\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := externalConfig(t, c.lines)
			if _, err := LoadExternal(context.Background(), cfg); !errors.Is(err, ErrExternalOutput) {
				t.Errorf("err = %v, want ErrExternalOutput", err)
			}
		})
	}
}

func TestLoadExternal_CommandFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Kind = "external"
	cfg.External = config.ExternalConfig{Command: "false"}
	if _, err := LoadExternal(context.Background(), cfg); err == nil {
		t.Fatal("expected error from failing command")
	}
}
