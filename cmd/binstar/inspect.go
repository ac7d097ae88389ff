package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/binstar/internal/analysis"
	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
	"github.com/san-kum/binstar/internal/storage"
)

func loadRun(runID string) (*storage.RunMetadata, []sim.Snapshot, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	snaps, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(snaps) == 0 {
		return nil, nil, fmt.Errorf("run %s has no data", runID)
	}
	return meta, snaps, nil
}

func separations(snaps []sim.Snapshot) []float64 {
	out := make([]float64, len(snaps))
	for i, s := range snaps {
		out[i] = physics.Separation(s.Bodies[0], s.Bodies[1])
	}
	return out
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tTICKS\tSTEPS\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Steps,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, snaps, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(snaps))

	series := []struct {
		caption string
		value   func(sim.Snapshot) float64
	}{
		{"separation", func(s sim.Snapshot) float64 { return physics.Separation(s.Bodies[0], s.Bodies[1]) }},
		{"body a x", func(s sim.Snapshot) float64 { return s.Bodies[0].Position[0] }},
		{"body a z", func(s sim.Snapshot) float64 { return s.Bodies[0].Position[2] }},
		{"body b x", func(s sim.Snapshot) float64 { return s.Bodies[1].Position[0] }},
		{"body b z", func(s sim.Snapshot) float64 { return s.Bodies[1].Position[2] }},
	}

	for _, sr := range series {
		data := make([]float64, len(snaps))
		for i, s := range snaps {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, snaps, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("orbital analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Name)

	sep := separations(snaps)
	ps := analysis.PowerSpectrum(sep)
	if len(ps) > 4 {
		plotData := ps[1 : len(ps)/2]
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (separation)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	lo, hi := sep[0], sep[0]
	for _, v := range sep {
		lo, hi = min(lo, v), max(hi, v)
	}
	fmt.Printf("separation: min %.3f  max %.3f\n", lo, hi)
	fmt.Printf("energy drift: %.6e\n", meta.EnergyDrift)

	if period := analysis.OrbitalPeriod(sep, meta.SampleEvery); period > 0 {
		fmt.Printf("orbital period: %.1f ticks\n", period)
	} else {
		fmt.Println("orbital period: none detected")
	}

	first := snaps[0]
	lambda := analysis.LyapunovExponent(first.Bodies[0], first.Bodies[1], meta.Gravity, lyapTicks, 1e-6)
	fmt.Printf("lyapunov exponent: %.6f per tick (%d ticks)\n", lambda, lyapTicks)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, snaps, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if poincare {
		section := analysis.GeneratePoincareSection(snaps)
		fmt.Printf("poincare section: %s (%d crossings)\n\n", meta.ID, len(section.Points))
		fmt.Println(analysis.PoincareSectionToASCII(section, 70, 20))
		return nil
	}

	portrait := analysis.GeneratePhasePortrait(snaps)
	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", portrait.XLabel, portrait.YLabel)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}
