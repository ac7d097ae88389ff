package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/binstar/internal/config"
)

func parsed(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := newRootCmd().Find([]string{"com"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return cmd
}

func TestScenarioDefaults(t *testing.T) {
	cfg, err := scenario(parsed(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "binary" {
		t.Errorf("expected binary, got %s", cfg.Name)
	}
	if cfg.Ticks != config.DefaultTicks {
		t.Errorf("expected %d ticks, got %d", config.DefaultTicks, cfg.Ticks)
	}
}

func TestScenarioPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte("ticks: 300\nsample_every: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := scenario(parsed(t, "--preset", "wide", "--config", path, "--ticks", "42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "wide" {
		t.Errorf("expected preset wide under the file, got %s", cfg.Name)
	}
	if cfg.Ticks != 42 {
		t.Errorf("expected flag to win with 42 ticks, got %d", cfg.Ticks)
	}
	if cfg.SampleEvery != 3 {
		t.Errorf("expected file to set sample_every 3, got %d", cfg.SampleEvery)
	}
}

func TestScenarioUnknownPreset(t *testing.T) {
	if _, err := scenario(parsed(t, "--preset", "nope")); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestScenarioInvalidTicks(t *testing.T) {
	if _, err := scenario(parsed(t, "--ticks", "0")); err == nil {
		t.Error("expected validation error for zero ticks")
	}
}

func TestParseGrid(t *testing.T) {
	name, vals, err := parseGrid("mass_b=1e10:3e10:3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "mass_b" {
		t.Errorf("expected mass_b, got %s", name)
	}
	expected := []float64{1e10, 2e10, 3e10}
	if len(vals) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(vals))
	}
	for i := range vals {
		if vals[i] != expected[i] {
			t.Errorf("value %d: expected %g, got %g", i, expected[i], vals[i])
		}
	}

	for _, bad := range []string{"mass_b", "mass_b=1:2", "mass_b=a:2:3", "mass_b=1:2:0"} {
		if _, _, err := parseGrid(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
