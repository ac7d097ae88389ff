package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/binstar/internal/analysis"
	"github.com/san-kum/binstar/internal/automation"
	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/metrics"
	"github.com/san-kum/binstar/internal/optim"
	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
	"github.com/san-kum/binstar/internal/storage"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	l := newLogger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simulator := sim.New()
	for _, m := range metrics.Default(cfg.Gravity) {
		simulator.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, b := cfg.Pair()
	l.Info("running", "scenario", cfg.Name, "ticks", cfg.Ticks, "sample_every", cfg.SampleEvery)
	start := time.Now()

	result, err := simulator.Run(ctx, a, b, cfg.SimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	for _, e := range result.Errors {
		l.Warn("run stopped early", "err", e)
	}

	name := runName
	if name == "" {
		name = cfg.Name
	}
	runID, err := st.Save(name, cfg.SimConfig(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.6e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for k := range result.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("  %s: %.6f\n", k, result.Metrics[k])
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	if sweepSteps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", sweepSteps)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, newLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tDRIFT\tMIN SEP\tMAX SEP\tPERIOD\tSTATUS\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		status := "ok"
		if r.Degenerate {
			status = "degenerate"
		}
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%.3f\t%.3f\t%.0f\t%s\n",
			r.ParamValue,
			r.Steps,
			r.EnergyDrift,
			r.MinSeparation,
			r.MaxSeparation,
			analysis.OrbitalPeriod(r.Separation, cfg.SampleEvery),
			status,
		)
	}
	return w.Flush()
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, st, newLogger())
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tSTEPS\tDRIFT\tRUN ID")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.3e\t%s\n", r.Step, r.Name, r.Result.StepsTaken, r.Result.EnergyDrift, id)
	}
	return w.Flush()
}

// parseGrid reads name=min:max:n.
func parseGrid(arg string) (string, []float64, error) {
	name, rng, ok := strings.Cut(arg, "=")
	if !ok {
		return "", nil, fmt.Errorf("grid %q: expected name=min:max:n", arg)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("grid %q: expected name=min:max:n", arg)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("grid %q: %w", arg, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("grid %q: %w", arg, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("grid %q: count must be a positive integer", arg)
	}
	sweep := automation.ParameterSweep{ParamMin: lo, ParamMax: hi, NumSteps: n}
	return name, sweep.Values(), nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	if len(grids) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}
	names := make([]string, len(grids))
	ranges := make([][]float64, len(grids))
	for i, g := range grids {
		if names[i], ranges[i], err = parseGrid(g); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	search := optim.NewGridSearch(names, ranges)
	l := newLogger()
	l.Info("searching", "candidates", search.Candidates(), "metric", metricName)
	best, val, err := search.Search(ctx, cfg, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6g\n", metricName, val)
	for _, n := range names {
		fmt.Printf("  %s = %g\n", n, best[n])
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASSES\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.3g / %.3g\t%s\n", name, p.Bodies[0].Mass, p.Bodies[1].Mass, config.PresetInfo[name])
	}
	return w.Flush()
}

func printCenterOfMass(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	com, err := physics.CenterOfMassE(cfg.PhysicsBodies())
	if err != nil {
		return err
	}
	fmt.Printf("center of mass: (%g, %g, %g)\n", com[0], com[1], com[2])
	return nil
}
