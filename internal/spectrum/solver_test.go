package spectrum_test

import (
	"context"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/spectrum"
)

// preset returns a private copy so specs can tweak it freely.
func preset(name string) *config.Config {
	cfg := config.GetPreset(name)
	Expect(cfg).NotTo(BeNil())
	copied := *cfg
	return &copied
}

var _ = Describe("Solver", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("analytic parametrization", func() {
		It("tabulates the configured power law", func() {
			cfg := preset("planck")

			s, err := spectrum.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			res, err := s.Solve(ctx)
			Expect(err).NotTo(HaveOccurred())

			out, err := res.Table.SpectrumAt(spectrum.Scalar, spectrum.Linear, cfg.KPivot)
			Expect(err).NotTo(HaveOccurred())
			Expect(out[0]).To(BeNumerically("~", cfg.Analytic.As, 1e-12))

			Expect(res.Observables.As).To(Equal(cfg.Analytic.As))
			Expect(res.Observables.Ns).To(Equal(cfg.Analytic.Ns))
			Expect(res.Observables.R).To(Equal(cfg.Analytic.R))
			Expect(res.Table.HasTensors()).To(BeTrue())
		})

		It("scales as the configured tilt across a decade", func() {
			cfg := preset("planck")

			s, err := spectrum.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			res, err := s.Solve(ctx)
			Expect(err).NotTo(HaveOccurred())

			lo, err := res.Table.SpectrumAt(spectrum.Scalar, spectrum.Logarithmic, math.Log(0.01))
			Expect(err).NotTo(HaveOccurred())
			hi, err := res.Table.SpectrumAt(spectrum.Scalar, spectrum.Logarithmic, math.Log(0.1))
			Expect(err).NotTo(HaveOccurred())

			tilt := (hi[0]-lo[0])/math.Ln10 + 1.
			Expect(tilt).To(BeNumerically("~", cfg.Analytic.Ns, 1e-6))
		})
	})

	Describe("quadratic large-field inflation", func() {
		It("produces a red-tilted spectrum with small tensors", func() {
			cfg := preset("chaotic")
			cfg.KMin, cfg.KMax = 0.04, 0.06

			s, err := spectrum.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			res, err := s.Solve(ctx)
			Expect(err).NotTo(HaveOccurred())

			obs := res.Observables
			Expect(obs.As).To(BeNumerically(">", 1e-7))
			Expect(obs.As).To(BeNumerically("<", 1e-5))
			Expect(obs.Ns).To(BeNumerically(">", 0.99))
			Expect(obs.Ns).To(BeNumerically("<", 1.))
			Expect(obs.R).To(BeNumerically(">", 1e-4))
			Expect(obs.R).To(BeNumerically("<", 0.02))
			Expect(obs.Nt).To(BeNumerically("<", 0.))

			// single-field consistency relation r = -8 n_t
			Expect(obs.Nt).To(BeNumerically("~", -obs.R/8., obs.R/16.))

			Expect(res.PhiPivot).To(Equal(15.))
			Expect(res.PhiMin).To(BeNumerically("<", res.PhiMax))
			Expect(res.PhiMin).To(BeNumerically("~", 15., 0.05))
			Expect(res.PhiMax).To(BeNumerically("~", 15., 0.05))
		})

		It("reports progress for every wavenumber", func() {
			cfg := preset("chaotic")
			cfg.KMin, cfg.KMax = 0.04, 0.06

			var (
				mu    sync.Mutex
				calls int
				total int
			)
			s, err := spectrum.New(cfg, nil,
				spectrum.WithWorkers(2),
				spectrum.WithProgress(func(done, n int) {
					mu.Lock()
					calls++
					total = n
					mu.Unlock()
				}))
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Solve(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(total))
			Expect(total).To(Equal(len(res.Table.LnK)))
		})

		It("stops when the context is cancelled", func() {
			cfg := preset("chaotic")
			cfg.KMin, cfg.KMax = 0.04, 0.06

			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			s, err := spectrum.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Solve(cancelled)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("Hubble flow parametrization", func() {
		It("stays close to scale invariance for a slowly decaying H", func() {
			cfg := preset("hubble-quadratic")
			cfg.KMin, cfg.KMax = 0.04, 0.06

			s, err := spectrum.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			res, err := s.Solve(ctx)
			Expect(err).NotTo(HaveOccurred())

			obs := res.Observables
			Expect(obs.As).To(BeNumerically(">", 0.))
			Expect(obs.Ns).To(BeNumerically("~", 1., 0.1))
			Expect(obs.R).To(BeNumerically(">", 0.))
			Expect(obs.R).To(BeNumerically("<", 0.01))
		})
	})

	Describe("configuration errors", func() {
		It("rejects an invalid kind", func() {
			cfg := config.DefaultConfig()
			cfg.Kind = "numerology"
			_, err := spectrum.New(cfg, nil)
			Expect(err).To(HaveOccurred())
		})
	})
})
