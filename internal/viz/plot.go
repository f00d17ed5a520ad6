package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/primordial/internal/spectrum"
)

// PlotTable charts the diagonal spectra of a table, one graph per
// tabulated column, ln P against ln k.
func PlotTable(t *spectrum.Table, height, width int) (string, error) {
	var out strings.Builder

	icSize := t.ICSize(spectrum.Scalar)
	for i1 := 0; i1 < icSize; i1++ {
		data := make([]float64, len(t.LnK))
		for ik, lnk := range t.LnK {
			vals, err := t.SpectrumAt(spectrum.Scalar, spectrum.Logarithmic, lnk)
			if err != nil {
				return "", err
			}
			data[ik] = vals[spectrum.PairIndex(i1, i1, icSize)]
		}

		caption := "ln P_s vs ln k"
		if icSize > 1 {
			caption = fmt.Sprintf("ln P_s vs ln k (ic %d)", i1)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		)
		out.WriteString(graph)
		out.WriteString("\n\n")
	}

	if t.HasTensors() {
		data := make([]float64, len(t.LnK))
		for ik, lnk := range t.LnK {
			vals, err := t.SpectrumAt(spectrum.Tensor, spectrum.Logarithmic, lnk)
			if err != nil {
				return "", err
			}
			data[ik] = vals[0]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption("ln P_t vs ln k"),
		)
		out.WriteString(graph)
		out.WriteString("\n")
	}

	return out.String(), nil
}

// PlotColumns charts stored spectrum columns against ln k, one graph
// per column.
func PlotColumns(header []string, rows [][]float64, height, width int) string {
	var out strings.Builder
	for col, name := range header {
		data := make([]float64, 0, len(rows))
		for _, row := range rows {
			if col < len(row) {
				data = append(data, row[col])
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(name+" vs ln k"),
		)
		out.WriteString(graph)
		out.WriteString("\n\n")
	}
	return out.String()
}

// Summary renders the spectral parameters as a styled panel.
func Summary(obs spectrum.Observables) string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("SPECTRAL PARAMETERS") + "\n")
	s.WriteString(LabelStyle.Render("A_s") + ValueStyle.Render(fmt.Sprintf("%.4e", obs.As)) + "\n")
	s.WriteString(LabelStyle.Render("n_s") + ValueStyle.Render(fmt.Sprintf("%.4f", obs.Ns)) + "\n")
	s.WriteString(LabelStyle.Render("alpha_s") + ValueStyle.Render(fmt.Sprintf("%.3e", obs.AlphaS)) + "\n")
	s.WriteString(LabelStyle.Render("beta_s") + ValueStyle.Render(fmt.Sprintf("%.3e", obs.BetaS)) + "\n")
	if obs.R != 0 {
		s.WriteString(LabelStyle.Render("r") + ValueStyle.Render(fmt.Sprintf("%.4e", obs.R)) + "\n")
		s.WriteString(LabelStyle.Render("n_t") + ValueStyle.Render(fmt.Sprintf("%.4e", obs.Nt)) + "\n")
		s.WriteString(LabelStyle.Render("alpha_t") + ValueStyle.Render(fmt.Sprintf("%.3e", obs.AlphaT)) + "\n")
	}
	return PanelStyle.Render(s.String())
}
