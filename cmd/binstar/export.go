package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/export"
	"github.com/san-kum/binstar/internal/storage"
)

func writeOutput(s string) error {
	if outPath == "" {
		_, err := io.WriteString(os.Stdout, s)
		return err
	}
	if err := os.WriteFile(outPath, []byte(s), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, snaps, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := storage.ExportJSON(outPath, meta, snaps); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
		return nil
	}
	return storage.WriteJSON(os.Stdout, meta, snaps)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, snaps, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteStates(os.Stdout, snaps)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, snaps, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(snaps) < 2 {
		return fmt.Errorf("need at least 2 samples to draw an orbit")
	}
	if braille {
		canvas := export.OrbitsToCanvas(snaps, 100, 50)
		return writeOutput(export.CanvasToSVG(canvas, 4, config.Palette["yellow"]))
	}
	return writeOutput(export.OrbitsToSVG(snaps, 800, 800))
}
