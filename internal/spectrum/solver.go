package spectrum

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/san-kum/primordial/internal/background"
	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/model"
)

// Solver turns a configuration into a tabulated primordial spectrum.
type Solver struct {
	cfg      *config.Config
	log      *zap.Logger
	workers  int
	progress func(done, total int)
}

type Option func(*Solver)

// WithWorkers caps the number of wavenumbers integrated concurrently.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithProgress registers a callback invoked after each wavenumber
// completes. It may be called from multiple goroutines.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Solver) { s.progress = fn }
}

func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Solver{cfg: cfg, log: log, workers: cfg.Workers}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Result of a Solve call. The field values are only filled for the
// inflation parametrizations: PhiPivot is where the pivot scale
// crosses the horizon, PhiMin and PhiMax bracket the field range
// spanned while observable scales cross.
type Result struct {
	Table       *Table
	Observables Observables

	PhiPivot float64
	PhiMin   float64
	PhiMax   float64
}

func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	switch s.cfg.Kind {
	case "analytic":
		return s.solveAnalytic()
	case "external":
		return s.solveExternal(ctx)
	default:
		return s.solveInflation(ctx)
	}
}

func (s *Solver) solveAnalytic() (*Result, error) {
	s.log.Info("computing analytic spectrum",
		zap.Float64("k_pivot", s.cfg.KPivot),
		zap.Int("isocurvature_modes", len(s.cfg.Analytic.Isocurvature)))

	an, err := NewAnalyticSpectrum(s.cfg)
	if err != nil {
		return nil, err
	}

	lnk := Grid(s.cfg.KMin, s.cfg.KMax, s.cfg.Precision.KPerDecade)
	t := NewTable(lnk, s.cfg.KPivot, 1+len(s.cfg.Analytic.Isocurvature), s.cfg.Tensors)
	if err := an.Fill(t); err != nil {
		return nil, err
	}
	if err := t.Finalize(); err != nil {
		return nil, err
	}

	// the spectral parameters are inputs here, not measurements
	obs := Observables{
		As:     s.cfg.Analytic.As,
		Ns:     s.cfg.Analytic.Ns,
		AlphaS: s.cfg.Analytic.AlphaS,
	}
	if s.cfg.Tensors {
		obs.R = s.cfg.Analytic.R
		obs.Nt = s.cfg.Analytic.Nt
		obs.AlphaT = s.cfg.Analytic.AlphaT
	}
	return &Result{Table: t, Observables: obs}, nil
}

func (s *Solver) solveExternal(ctx context.Context) (*Result, error) {
	s.log.Info("loading external spectrum", zap.String("command", s.cfg.External.Command))

	t, err := LoadExternal(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	obs, err := ComputeObservables(t, s.cfg.Precision.KPerDecade)
	if err != nil {
		return nil, err
	}
	s.logObservables(obs)
	return &Result{Table: t, Observables: obs}, nil
}

func (s *Solver) solveInflation(ctx context.Context) (*Result, error) {
	cfg := s.cfg
	prec := &cfg.Precision

	dyn, err := buildDynamics(cfg)
	if err != nil {
		return nil, err
	}

	// locate the pivot field value
	var phiPivot float64
	switch dyn.Kind() {
	case model.ByPotentialWithEnd:
		m := dyn.(*model.PotentialModel)
		phiStop, err := background.FindPhiStop(m, prec, cfg.Potential.PhiEnd)
		if err != nil {
			return nil, err
		}
		s.log.Info("inflation ends naturally", zap.Float64("phi_stop", phiStop))

		phiPivot, err = background.FindPhiPivot(m, prec, cfg.Potential.PhiEnd, cfg.Potential.LnAHRatio)
		if err != nil {
			return nil, err
		}
		s.log.Info("pivot placed from end of inflation",
			zap.Float64("phi_pivot", phiPivot),
			zap.Float64("ln_ah_ratio", cfg.Potential.LnAHRatio))
	case model.ByHubble:
		phiPivot = cfg.Hubble.PhiPivot
	default:
		phiPivot = cfg.Potential.PhiPivot
	}

	// attractor (or exact H) at the pivot
	var hPivot, dphidtPivot float64
	switch m := dyn.(type) {
	case *model.PotentialModel:
		hPivot, dphidtPivot, err = background.FindAttractor(m, prec, phiPivot, prec.AttractorPrecisionPivot)
		if err != nil {
			return nil, err
		}
	case *model.HubbleModel:
		hPivot, _, _, _, err = m.CheckHubble(phiPivot)
		if err != nil {
			return nil, err
		}
	}
	aPivot := cfg.KPivot / hPivot
	s.log.Info("pivot attractor",
		zap.Float64("phi_pivot", phiPivot),
		zap.Float64("H_pivot", hPivot),
		zap.Float64("a_pivot", aPivot))

	// the model must keep inflating until well after the smallest
	// observable scale crosses the horizon
	st := background.State{A: aPivot, Phi: phiPivot, DPhi: aPivot * dphidtPivot}
	if err := background.Evolve(dyn, prec, &st, background.TargetAH,
		cfg.KMax/prec.RatioMax, true, model.Forward); err != nil {
		return nil, fmt.Errorf("inflation too short after the pivot: %w", err)
	}

	ini, err := background.FindInitialState(dyn, prec, cfg.KMin/prec.RatioMin, aPivot, phiPivot)
	if err != nil {
		return nil, err
	}
	s.log.Info("initial state located", zap.Float64("phi_ini", ini.Phi))

	lnk := Grid(cfg.KMin, cfg.KMax, prec.KPerDecade)
	lnPks := make([]float64, len(lnk))
	lnPkt := make([]float64, len(lnk))
	errs := make([]error, len(lnk))

	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	sem := make(chan struct{}, s.workers)
	for ik := range lnk {
		wg.Add(1)
		go func(ik int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs[ik] = err
				return
			}

			k := math.Exp(lnk[ik])

			// bring the background to the mode-dependent start time,
			// with the mode still deep inside the horizon
			st := ini
			if err := background.Evolve(dyn, prec, &st, background.TargetAH,
				k/prec.RatioMin, false, model.Forward); err != nil {
				errs[ik] = err
				return
			}

			curvature, tensor, err := oneK(dyn, prec, st, k)
			if err != nil {
				errs[ik] = err
				return
			}
			lnPks[ik] = math.Log(curvature)
			lnPkt[ik] = math.Log(tensor)

			if s.progress != nil {
				s.progress(int(done.Add(1)), len(lnk))
			}
		}(ik)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	t := NewTable(lnk, cfg.KPivot, 1, true)
	for ik := range lnk {
		if err := t.Set(Scalar, 0, 0, ik, lnPks[ik]); err != nil {
			return nil, err
		}
		if err := t.Set(Tensor, 0, 0, ik, lnPkt[ik]); err != nil {
			return nil, err
		}
	}
	if err := t.Finalize(); err != nil {
		return nil, err
	}

	// field range spanned by the observable scales
	st = ini
	if err := background.Evolve(dyn, prec, &st, background.TargetAH, cfg.KMin, false, model.Forward); err != nil {
		return nil, err
	}
	phiMin := st.Phi
	if err := background.Evolve(dyn, prec, &st, background.TargetAH, cfg.KMax, false, model.Forward); err != nil {
		return nil, err
	}
	phiMax := st.Phi
	s.log.Info("observable field range",
		zap.Float64("phi_min", phiMin),
		zap.Float64("phi_max", phiMax))

	obs, err := ComputeObservables(t, prec.KPerDecade)
	if err != nil {
		return nil, err
	}
	s.logObservables(obs)

	return &Result{
		Table:       t,
		Observables: obs,
		PhiPivot:    phiPivot,
		PhiMin:      phiMin,
		PhiMax:      phiMax,
	}, nil
}

func (s *Solver) logObservables(obs Observables) {
	fields := []zap.Field{
		zap.Float64("A_s", obs.As),
		zap.Float64("n_s", obs.Ns),
		zap.Float64("alpha_s", obs.AlphaS),
	}
	if obs.R != 0 {
		fields = append(fields,
			zap.Float64("r", obs.R),
			zap.Float64("n_t", obs.Nt))
	}
	s.log.Info("spectral parameters at pivot", fields...)
}

func buildDynamics(cfg *config.Config) (model.Dynamics, error) {
	switch cfg.Kind {
	case "inflation_potential", "inflation_potential_end":
		shape := model.Polynomial
		if cfg.Potential.Shape == "natural" {
			shape = model.Natural
		}
		withEnd := cfg.Kind == "inflation_potential_end"
		center := cfg.Potential.PhiPivot
		if withEnd {
			center = cfg.Potential.PhiEnd
		}
		return &model.PotentialModel{
			Shape:   shape,
			V0:      cfg.Potential.V0,
			V1:      cfg.Potential.V1,
			V2:      cfg.Potential.V2,
			V3:      cfg.Potential.V3,
			V4:      cfg.Potential.V4,
			Center:  center,
			WithEnd: withEnd,
		}, nil
	case "inflation_hubble":
		return &model.HubbleModel{
			H0: cfg.Hubble.H0,
			H1: cfg.Hubble.H1,
			H2: cfg.Hubble.H2,
			H3: cfg.Hubble.H3,
			H4: cfg.Hubble.H4,
		}, nil
	}
	return nil, fmt.Errorf("spectrum: no dynamics for kind %q", cfg.Kind)
}
