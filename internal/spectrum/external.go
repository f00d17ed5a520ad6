package spectrum

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/san-kum/primordial/internal/config"
)

// LoadExternal runs the configured command through the shell and
// tabulates the spectrum it prints: one "k P_s(k)" line per
// wavenumber, with a third P_t(k) column when tensors are requested.
// The command's own k sampling is preserved; it must be strictly
// ascending and leave at least two points outside [k_min, k_max] on
// each side so the spline interpolation stays safe.
func LoadExternal(ctx context.Context, cfg *config.Config) (*Table, error) {
	cmdline := cfg.External.Command
	if len(cfg.External.Args) > 0 {
		cmdline += " " + strings.Join(cfg.External.Args, " ")
	}

	out, err := exec.CommandContext(ctx, "sh", "-c", cmdline).Output()
	if err != nil {
		return nil, fmt.Errorf("spectrum: external command %q: %w", cmdline, err)
	}

	var ks, pks, pkt []float64
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		want := 2
		if cfg.Tensors {
			want = 3
		}
		if len(fields) < want {
			return nil, fmt.Errorf("%w: line %q has %d columns, want %d",
				ErrExternalOutput, scanner.Text(), len(fields), want)
		}

		values := make([]float64, want)
		for i := 0; i < want; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrExternalOutput, fields[i], err)
			}
			values[i] = v
		}

		if n := len(ks); n > 0 && values[0] <= ks[n-1] {
			return nil, fmt.Errorf("%w: wavenumbers not strictly ascending around k=%e",
				ErrExternalOutput, values[0])
		}
		if values[1] <= 0. {
			return nil, fmt.Errorf("%w: non-positive P_s at k=%e", ErrExternalOutput, values[0])
		}
		ks = append(ks, values[0])
		pks = append(pks, values[1])
		if cfg.Tensors {
			if values[2] <= 0. {
				return nil, fmt.Errorf("%w: non-positive P_t at k=%e", ErrExternalOutput, values[0])
			}
			pkt = append(pkt, values[2])
		}
	}

	if len(ks) < 4 {
		return nil, fmt.Errorf("%w: only %d samples", ErrExternalOutput, len(ks))
	}
	if ks[1] > cfg.KMin {
		return nil, fmt.Errorf("%w: need at least 2 points below k_min=%e, first samples start at %e",
			ErrExternalOutput, cfg.KMin, ks[0])
	}
	if ks[len(ks)-2] < cfg.KMax {
		return nil, fmt.Errorf("%w: need at least 2 points above k_max=%e, samples end at %e",
			ErrExternalOutput, cfg.KMax, ks[len(ks)-1])
	}

	lnk := make([]float64, len(ks))
	for i, k := range ks {
		lnk[i] = math.Log(k)
	}

	t := NewTable(lnk, cfg.KPivot, 1, cfg.Tensors)
	for i := range ks {
		if err := t.Set(Scalar, 0, 0, i, math.Log(pks[i])); err != nil {
			return nil, err
		}
		if cfg.Tensors {
			if err := t.Set(Tensor, 0, 0, i, math.Log(pkt[i])); err != nil {
				return nil, err
			}
		}
	}
	if err := t.Finalize(); err != nil {
		return nil, err
	}
	return t, nil
}
