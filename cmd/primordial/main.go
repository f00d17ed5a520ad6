package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/spectrum"
	"github.com/san-kum/primordial/internal/store"
	"github.com/san-kum/primordial/internal/tui"
	"github.com/san-kum/primordial/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	workers    int
	verbose    bool
	jsonOut    bool
	noSave     bool
	kPivot     float64
	kMin       float64
	kMax       float64
	plotHeight int
	plotWidth  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "primordial",
		Short: "primordial power spectrum solver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".primordial", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "solve the spectrum",
		RunE:  runSolve,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&workers, "workers", 0, "concurrent wavenumbers (0 = all cores)")
	runCmd.Flags().Float64Var(&kPivot, "k-pivot", config.DefaultKPivot, "pivot scale in 1/Mpc")
	runCmd.Flags().Float64Var(&kMin, "k-min", config.DefaultKMin, "smallest wavenumber in 1/Mpc")
	runCmd.Flags().Float64Var(&kMax, "k-max", config.DefaultKMax, "largest wavenumber in 1/Mpc")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full spectrum as JSON")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().IntVar(&plotHeight, "height", 10, "chart height")
	runCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "solve with a live progress view",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "chart height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				loaded, err := loadPreset(preset)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			return config.Save(args[0], cfg)
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "seed from a preset")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadPreset(name string) (*config.Config, error) {
	p := config.GetPreset(name)
	if p == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	copied := *p
	return &copied, nil
}

func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		loaded, err := loadPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and file
	if f := cmd.Flags().Lookup("k-pivot"); f != nil && f.Changed {
		cfg.KPivot = kPivot
	}
	if f := cmd.Flags().Lookup("k-min"); f != nil && f.Changed {
		cfg.KMin = kMin
	}
	if f := cmd.Flags().Lookup("k-max"); f != nil && f.Changed {
		cfg.KMax = kMax
	}
	if f := cmd.Flags().Lookup("workers"); f != nil && f.Changed {
		cfg.Workers = workers
	}

	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	solver, err := spectrum.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("solving %s spectrum...\n", cfg.Kind)
	start := time.Now()

	res, err := solver.Solve(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))

	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if jsonOut {
		return store.ExportJSONStdout(cfg, res)
	}

	plot, err := viz.PlotTable(res.Table, plotHeight, plotWidth)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(plot)
	fmt.Println(viz.Summary(res.Observables))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := tui.Run(ctx, cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tA_S\tN_S\tR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3e\t%.4f\t%.3e\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Observables.As,
			run.Observables.Ns,
			run.Observables.R,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	header, lnk, rows, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("wavenumbers: %d\n\n", len(lnk))

	fmt.Println(viz.PlotColumns(header, rows, plotHeight, plotWidth))
	fmt.Println(viz.Summary(meta.Observables))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
