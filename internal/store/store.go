package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/spectrum"
)

// Store persists solved spectra as one directory per run, holding the
// metadata, the configuration that produced it and the tabulated
// spectrum.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	KPivot  float64 `json:"k_pivot"`
	KMin    float64 `json:"k_min"`
	KMax    float64 `json:"k_max"`
	Tensors bool    `json:"tensors"`

	Observables spectrum.Observables `json:"observables"`

	PhiPivot float64 `json:"phi_pivot,omitempty"`
	PhiMin   float64 `json:"phi_min,omitempty"`
	PhiMax   float64 `json:"phi_max,omitempty"`
}

// Save writes a run directory named after the parametrization and the
// wall-clock time: metadata.json, config.yaml and spectrum.csv.
func (s *Store) Save(cfg *config.Config, res *spectrum.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Kind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Kind:        cfg.Kind,
		Timestamp:   time.Now(),
		KPivot:      cfg.KPivot,
		KMin:        cfg.KMin,
		KMax:        cfg.KMax,
		Tensors:     res.Table.HasTensors(),
		Observables: res.Observables,
		PhiPivot:    res.PhiPivot,
		PhiMin:      res.PhiMin,
		PhiMax:      res.PhiMax,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, "config.yaml"), cfg); err != nil {
		return "", err
	}

	if err := writeSpectrumCSV(filepath.Join(runDir, "spectrum.csv"), res.Table); err != nil {
		return "", err
	}

	return runID, nil
}

func writeSpectrumCSV(path string, t *spectrum.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	icSize := t.ICSize(spectrum.Scalar)
	header := []string{"ln_k"}
	for i1 := 0; i1 < icSize; i1++ {
		for i2 := i1; i2 < icSize; i2++ {
			header = append(header, fmt.Sprintf("scalar_%d_%d", i1, i2))
		}
	}
	if t.HasTensors() {
		header = append(header, "tensor")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, lnk := range t.LnK {
		row := []string{strconv.FormatFloat(lnk, 'e', 8, 64)}

		out, err := t.SpectrumAt(spectrum.Scalar, spectrum.Logarithmic, lnk)
		if err != nil {
			return err
		}
		for _, v := range out {
			row = append(row, strconv.FormatFloat(v, 'e', 8, 64))
		}

		if t.HasTensors() {
			outT, err := t.SpectrumAt(spectrum.Tensor, spectrum.Logarithmic, lnk)
			if err != nil {
				return err
			}
			row = append(row, strconv.FormatFloat(outT[0], 'e', 8, 64))
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSpectrum reads back the tabulated columns of a run: the column
// names, one slice of ln k and one row of values per wavenumber.
func (s *Store) LoadSpectrum(runID string) ([]string, []float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "spectrum.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, nil, fmt.Errorf("store: run %s has an empty spectrum table", runID)
	}

	header := records[0][1:]
	lnk := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		l, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("store: bad ln_k value %q: %w", record[0], err)
		}
		lnk = append(lnk, l)

		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("store: bad value %q: %w", field, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return header, lnk, rows, nil
}
