package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/metrics"
	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
	"github.com/san-kum/binstar/internal/storage"
)

var ErrUnknownParam = errors.New("unknown parameter")

// Params lists the names accepted by [Apply].
var Params = []string{"gravity", "mass_a", "mass_b", "separation_scale", "velocity_scale"}

// Apply sets one named parameter on cfg. The scale parameters multiply the
// current positions or velocities of both bodies.
func Apply(cfg *config.Config, name string, v float64) error {
	switch name {
	case "gravity":
		cfg.Gravity = v
	case "mass_a":
		cfg.Bodies[0].Mass = v
	case "mass_b":
		cfg.Bodies[1].Mass = v
	case "separation_scale":
		for i := range cfg.Bodies {
			cfg.Bodies[i].Position = cfg.Bodies[i].Position.Mul(v)
		}
	case "velocity_scale":
		for i := range cfg.Bodies {
			cfg.Bodies[i].Velocity = cfg.Bodies[i].Velocity.Mul(v)
		}
	default:
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, Params)
	}
	return nil
}

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset, optionally a config file on top, then
// Params and the tick overrides.
type ScenarioStep struct {
	Preset      string             `yaml:"preset"`
	Config      string             `yaml:"config"`
	Ticks       int                `yaml:"ticks"`
	SampleEvery int                `yaml:"sample_every"`
	Params      map[string]float64 `yaml:"params"`
	SaveAs      string             `yaml:"save_as"`
}

type StepResult struct {
	Step   int
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Build resolves a step into a validated config.
func (s ScenarioStep) Build() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "binary"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	if s.Config != "" {
		loaded, err := config.LoadOver(s.Config, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	for k, v := range s.Params {
		if err := Apply(cfg, k, v); err != nil {
			return nil, err
		}
	}
	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.SampleEvery > 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps with SaveAs set are
// written to store when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, l *log.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Build()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		l.Info("running step", "step", i+1, "of", len(scenario.Steps), "preset", cfg.Name, "ticks", cfg.Ticks)

		simulator := sim.New()
		for _, m := range metrics.Default(cfg.Gravity) {
			simulator.AddMetric(m)
		}
		a, b := cfg.Pair()
		result, err := simulator.Run(ctx, a, b, cfg.SimConfig())
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		for _, e := range result.Errors {
			l.Warn("step stopped early", "step", i+1, "err", e)
		}

		sr := StepResult{Step: i + 1, Name: cfg.Name, Result: result}
		if step.SaveAs != "" && store != nil {
			sr.Name = step.SaveAs
			if sr.RunID, err = store.Save(step.SaveAs, cfg.SimConfig(), result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep varies one parameter linearly over NumSteps values.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult is one point of a sweep. The separation bounds cover every
// tick; Separation holds only the sampled series.
type SweepResult struct {
	ParamValue    float64
	Steps         int
	EnergyDrift   float64
	MinSeparation float64
	MaxSeparation float64
	Degenerate    bool
	Separation    []float64
}

// Values returns the parameter values the sweep visits.
func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.ParamMin}
	}
	vals := make([]float64, s.NumSteps)
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	for i := range vals {
		vals[i] = s.ParamMin + float64(i)*step
	}
	return vals
}

// RunSweep runs every value of the sweep concurrently and returns results
// in parameter order.
func RunSweep(ctx context.Context, sweep *ParameterSweep, l *log.Logger) ([]SweepResult, error) {
	values := sweep.Values()
	jobs := make([]sim.Job, len(values))
	seps := make([]*metrics.Separation, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := Apply(cfg, sweep.ParamName, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}
		a, b := cfg.Pair()
		seps[i] = metrics.NewSeparation()
		jobs[i] = sim.Job{
			Name:    fmt.Sprintf("%s=%g", sweep.ParamName, v),
			A:       a,
			B:       b,
			Config:  cfg.SimConfig(),
			Metrics: []sim.Metric{seps[i]},
		}
	}

	l.Info("sweeping", "param", sweep.ParamName, "values", len(values))
	runs, err := sim.NewEnsemble(nil).Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		sep := make([]float64, len(r.Snapshots))
		for j, s := range r.Snapshots {
			sep[j] = physics.Separation(s.Bodies[0], s.Bodies[1])
		}
		results[i] = SweepResult{
			ParamValue:    values[i],
			Steps:         r.StepsTaken,
			EnergyDrift:   r.EnergyDrift,
			MinSeparation: seps[i].Value(),
			MaxSeparation: seps[i].Max(),
			Degenerate:    len(r.Errors) > 0,
			Separation:    sep,
		}
		l.Debug("sweep point", "param", sweep.ParamName, "value", values[i], "drift", r.EnergyDrift)
	}
	return results, nil
}
