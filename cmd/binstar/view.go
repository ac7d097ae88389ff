package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/binstar/internal/driver"
	"github.com/san-kum/binstar/internal/logger"
	"github.com/san-kum/binstar/internal/viz"
)

// The terminal viewers own stdout, so the driver logs nowhere.
func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	d := driver.New(cfg.DriverOptions(logger.Discard()))
	return viz.Run(d, viz.ModelOptions{
		Title:       cfg.Name,
		Gravity:     cfg.Gravity,
		GridSlices:  cfg.Window.GridSlices,
		GridSpacing: cfg.Window.GridSpacing,
		FPS:         frameRate,
		Theme:       themeName,
		RecordPath:  recordPath,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	return viz.RunInteractive()
}
