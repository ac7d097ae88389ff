package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/binstar/internal/automation"
	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/gui"
	"github.com/san-kum/binstar/internal/logger"
)

var (
	dataDir     string
	configFile  string
	preset      string
	ticks       int
	sampleEvery int
	logLevel    string

	runName    string
	frameRate  int
	themeName  string
	recordPath string
	outPath    string
	poincare   bool
	braille    bool
	lyapTicks  int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	grids      []string
	metricName string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "binstar",
		Short:        "two-body gravity simulator with a free-look camera",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data-dir", ".binstar", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "binary", "scenario preset")
	pf.IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	pf.IntVar(&sampleEvery, "sample-every", 1, "record every n ticks")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the window viewer",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the scenario in the terminal viewer",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&themeName, "theme", "deepspace", "color theme")
	liveCmd.Flags().StringVar(&recordPath, "record", "", "gif path for recordings (toggle with g)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset from a terminal menu",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to the scenario name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot separation and positions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital period, power spectrum and lyapunov estimate",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&lyapTicks, "lyapunov-ticks", 2000, "ticks for the lyapunov estimate")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "separation phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().BoolVar(&poincare, "poincare", false, "plot a poincare section instead")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a top-down orbit drawing to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal dot canvas")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the scenario over a range of one parameter concurrently",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "velocity_scale", fmt.Sprintf("parameter to vary %v", automation.Params))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.5, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a scripted sequence of simulations from yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().StringArrayVar(&grids, "grid", nil, "parameter grid as name=min:max:n (repeatable)")
	optimizeCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimize")

	comCmd := &cobra.Command{
		Use:   "com",
		Short: "print the scenario's center of mass",
		Args:  cobra.NoArgs,
		RunE:  printCenterOfMass,
	}

	rootCmd.AddCommand(guiCmd, liveCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, phaseCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, sweepCmd, scriptCmd, optimizeCmd, comCmd)
	return rootCmd
}

func newLogger() *log.Logger {
	level, err := logger.ParseLevel(logLevel)
	l := logger.New(os.Stderr, level)
	if err != nil {
		l.Warn("falling back to info", "err", err)
	}
	return l
}

// scenario resolves the preset, then the config file on top of it, then any
// flags the user set explicitly.
func scenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, newLogger())
}
