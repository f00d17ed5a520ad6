package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Mode distinguishes scalar (curvature plus isocurvature) and tensor
// spectra.
type Mode int

const (
	Scalar Mode = iota
	Tensor
)

func (m Mode) String() string {
	if m == Tensor {
		return "tensor"
	}
	return "scalar"
}

// Query selects the representation of spectrum values: Linear takes
// and returns plain P(k); Logarithmic takes ln k and returns ln P for
// diagonal entries and correlation coefficients off the diagonal.
type Query int

const (
	Linear Query = iota
	Logarithmic
)

// PairIndex maps an ordered pair of initial-condition indices
// (i1 <= i2) into the flattened upper triangle of an n x n symmetric
// matrix.
func PairIndex(i1, i2, n int) int {
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	return i2 + n*i1 - (i1*(i1+1))/2
}

// PairCount returns the number of independent entries of an n x n
// symmetric matrix.
func PairCount(n int) int { return n * (n + 1) / 2 }

type modeTable struct {
	icSize  int
	nonZero []bool
	lnPk    [][]float64 // [pair][ik]: ln P on the diagonal, correlation off it
	fits    []interp.NaturalCubic
}

func newModeTable(icSize, nk int) *modeTable {
	t := &modeTable{
		icSize:  icSize,
		nonZero: make([]bool, PairCount(icSize)),
		lnPk:    make([][]float64, PairCount(icSize)),
		fits:    make([]interp.NaturalCubic, PairCount(icSize)),
	}
	for i := range t.lnPk {
		t.lnPk[i] = make([]float64, nk)
	}
	return t
}

// Table is the tabulated primordial spectrum: diagonal entries as
// ln P(ln k), off-diagonal entries as correlation coefficients, with
// natural cubic spline interpolation in ln k. When built from the
// analytic parametrization, queries outside the tabulated range fall
// back to the closed-form expression; other parametrizations reject
// them.
type Table struct {
	KPivot float64
	LnK    []float64

	scalar *modeTable
	tensor *modeTable

	analytic *AnalyticSpectrum
}

// NewTable allocates a table over the given ln k grid, with icSize
// scalar initial conditions and optionally a tensor mode.
func NewTable(lnk []float64, kPivot float64, icSize int, tensors bool) *Table {
	t := &Table{
		KPivot: kPivot,
		LnK:    lnk,
		scalar: newModeTable(icSize, len(lnk)),
	}
	if tensors {
		t.tensor = newModeTable(1, len(lnk))
	}
	return t
}

func (t *Table) mode(m Mode) (*modeTable, error) {
	switch m {
	case Scalar:
		return t.scalar, nil
	case Tensor:
		if t.tensor == nil {
			return nil, fmt.Errorf("%w: tensor spectrum not computed", ErrUnknownMode)
		}
		return t.tensor, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, m)
}

// ICSize returns the number of initial conditions of a mode.
func (t *Table) ICSize(m Mode) int {
	mt, err := t.mode(m)
	if err != nil {
		return 0
	}
	return mt.icSize
}

// HasTensors reports whether the tensor mode is tabulated.
func (t *Table) HasTensors() bool { return t.tensor != nil }

// Set stores one tabulated value for the pair (i1,i2) at grid index
// ik: ln P for a diagonal pair, the correlation coefficient otherwise.
// Setting a value marks the pair as non-zero.
func (t *Table) Set(m Mode, i1, i2, ik int, value float64) error {
	mt, err := t.mode(m)
	if err != nil {
		return err
	}
	pair := PairIndex(i1, i2, mt.icSize)
	mt.lnPk[pair][ik] = value
	mt.nonZero[pair] = true
	return nil
}

// Finalize fits the interpolation splines. Must be called after all
// values are stored and before any query.
func (t *Table) Finalize() error {
	for _, mt := range []*modeTable{t.scalar, t.tensor} {
		if mt == nil {
			continue
		}
		for pair := range mt.lnPk {
			if !mt.nonZero[pair] {
				continue
			}
			if err := mt.fits[pair].Fit(t.LnK, mt.lnPk[pair]); err != nil {
				return fmt.Errorf("spline fit: %w", err)
			}
		}
	}
	return nil
}

// SpectrumAt evaluates the full symmetric matrix of spectra of a mode
// at one wavenumber. The input is k for Linear queries and ln k for
// Logarithmic ones; the output layout follows PairIndex. Logarithmic
// output carries ln P on the diagonal and correlation coefficients off
// it; Linear output carries plain spectra everywhere.
func (t *Table) SpectrumAt(m Mode, q Query, input float64) ([]float64, error) {
	mt, err := t.mode(m)
	if err != nil {
		return nil, err
	}

	var lnk float64
	if q == Linear {
		if input <= 0. {
			return nil, fmt.Errorf("spectrum: k = %e must be positive", input)
		}
		lnk = math.Log(input)
	} else {
		lnk = input
	}

	out := make([]float64, PairCount(mt.icSize))

	if lnk < t.LnK[0] || lnk > t.LnK[len(t.LnK)-1] {
		if t.analytic == nil {
			return nil, fmt.Errorf("%w: k=%e not in [%e, %e]",
				ErrOutOfRange, math.Exp(lnk), math.Exp(t.LnK[0]), math.Exp(t.LnK[len(t.LnK)-1]))
		}
		// closed-form fallback, in linear representation
		k := math.Exp(lnk)
		for i1 := 0; i1 < mt.icSize; i1++ {
			for i2 := i1; i2 < mt.icSize; i2++ {
				pair := PairIndex(i1, i2, mt.icSize)
				if mt.nonZero[pair] {
					out[pair] = t.analytic.Pair(m, pair, k)
				}
			}
		}
		if q == Logarithmic {
			linearToLog(mt, out)
		}
		return out, nil
	}

	for pair := range out {
		if mt.nonZero[pair] {
			out[pair] = mt.fits[pair].Predict(lnk)
		}
	}
	if q == Linear {
		logToLinear(mt, out)
	}
	return out, nil
}

// linearToLog converts plain spectra in place: correlations first,
// while the diagonal still holds linear values, then logs.
func linearToLog(mt *modeTable, out []float64) {
	for i1 := 0; i1 < mt.icSize; i1++ {
		for i2 := i1 + 1; i2 < mt.icSize; i2++ {
			pair := PairIndex(i1, i2, mt.icSize)
			if mt.nonZero[pair] {
				d1 := out[PairIndex(i1, i1, mt.icSize)]
				d2 := out[PairIndex(i2, i2, mt.icSize)]
				out[pair] /= math.Sqrt(d1 * d2)
			}
		}
	}
	for i1 := 0; i1 < mt.icSize; i1++ {
		pair := PairIndex(i1, i1, mt.icSize)
		out[pair] = math.Log(out[pair])
	}
}

func logToLinear(mt *modeTable, out []float64) {
	for i1 := 0; i1 < mt.icSize; i1++ {
		pair := PairIndex(i1, i1, mt.icSize)
		out[pair] = math.Exp(out[pair])
	}
	for i1 := 0; i1 < mt.icSize; i1++ {
		for i2 := i1 + 1; i2 < mt.icSize; i2++ {
			pair := PairIndex(i1, i2, mt.icSize)
			if mt.nonZero[pair] {
				d1 := out[PairIndex(i1, i1, mt.icSize)]
				d2 := out[PairIndex(i2, i2, mt.icSize)]
				out[pair] *= math.Sqrt(d1 * d2)
			} else {
				out[pair] = 0.
			}
		}
	}
}
