package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/primordial/internal/spectrum"
)

func powerLawTable(t *testing.T, tensors bool) *spectrum.Table {
	t.Helper()

	lnk := spectrum.Grid(1e-4, 1., 10.)
	tab := spectrum.NewTable(lnk, 0.05, 1, tensors)
	for ik, l := range lnk {
		x := l - math.Log(0.05)
		if err := tab.Set(spectrum.Scalar, 0, 0, ik, math.Log(2.1e-9)-0.035*x); err != nil {
			t.Fatal(err)
		}
		if tensors {
			if err := tab.Set(spectrum.Tensor, 0, 0, ik, math.Log(1.3e-10)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tab.Finalize(); err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestPlotTable(t *testing.T) {
	out, err := PlotTable(powerLawTable(t, true), 8, 60)
	if err != nil {
		t.Fatalf("PlotTable: %v", err)
	}
	if !strings.Contains(out, "ln P_s vs ln k") {
		t.Error("missing the scalar caption")
	}
	if !strings.Contains(out, "ln P_t vs ln k") {
		t.Error("missing the tensor caption")
	}
}

func TestPlotTable_ScalarOnly(t *testing.T) {
	out, err := PlotTable(powerLawTable(t, false), 8, 60)
	if err != nil {
		t.Fatalf("PlotTable: %v", err)
	}
	if strings.Contains(out, "ln P_t") {
		t.Error("tensor chart should not appear without tensors")
	}
}
