package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/spectrum"
)

// ExportData is the JSON rendition of a solved spectrum: the grid in
// ln k, per-pair scalar columns in logarithmic representation and the
// tensor column when present.
type ExportData struct {
	Kind    string  `json:"kind"`
	KPivot  float64 `json:"k_pivot"`
	Tensors bool    `json:"tensors"`

	Observables spectrum.Observables `json:"observables"`

	LnK    []float64   `json:"ln_k"`
	Scalar [][]float64 `json:"scalar"`
	Tensor []float64   `json:"tensor,omitempty"`
}

func buildExport(cfg *config.Config, res *spectrum.Result) (*ExportData, error) {
	t := res.Table
	data := &ExportData{
		Kind:        cfg.Kind,
		KPivot:      t.KPivot,
		Tensors:     t.HasTensors(),
		Observables: res.Observables,
		LnK:         t.LnK,
		Scalar:      make([][]float64, len(t.LnK)),
	}

	for i, lnk := range t.LnK {
		out, err := t.SpectrumAt(spectrum.Scalar, spectrum.Logarithmic, lnk)
		if err != nil {
			return nil, err
		}
		data.Scalar[i] = out

		if t.HasTensors() {
			outT, err := t.SpectrumAt(spectrum.Tensor, spectrum.Logarithmic, lnk)
			if err != nil {
				return nil, err
			}
			data.Tensor = append(data.Tensor, outT[0])
		}
	}
	return data, nil
}

func exportTo(w io.Writer, cfg *config.Config, res *spectrum.Result) error {
	data, err := buildExport(cfg, res)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, cfg *config.Config, res *spectrum.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportTo(file, cfg, res)
}

func ExportJSONStdout(cfg *config.Config, res *spectrum.Result) error {
	return exportTo(os.Stdout, cfg, res)
}
