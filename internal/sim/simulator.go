package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/binstar/internal/physics"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances the pair cfg.Ticks times. A non-finite state ends the run
// early with a *SimulationError in Result.Errors when cfg.ValidateState is
// set; the returned error is reserved for bad input and cancellation.
func (s *Simulator) Run(ctx context.Context, a, b physics.Body, cfg Config) (*Result, error) {
	if err := s.validate(a, b, cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Snapshots: make([]Snapshot, 0, cfg.Ticks/every+2),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	snap := Snapshot{Tick: 0, Bodies: [2]physics.Body{a, b}}
	result.Snapshots = append(result.Snapshots, snap)
	s.notify(snap)

	initialEnergy := physics.Energy(a, b, cfg.G)

	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		a, b = physics.StepPair(a, b, cfg.G)
		snap = Snapshot{Tick: i, Bodies: [2]physics.Body{a, b}}

		if cfg.ValidateState && !snap.IsValid() {
			result.Errors = append(result.Errors, &SimulationError{Tick: i, Snapshot: snap, Wrapped: physics.ErrDegenerate})
			break
		}

		result.StepsTaken++
		s.notify(snap)
		if i%every == 0 || i == cfg.Ticks {
			result.Snapshots = append(result.Snapshots, snap)
		}
	}

	last := result.Final()
	finalEnergy := physics.Energy(last.Bodies[0], last.Bodies[1], cfg.G)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) notify(snap Snapshot) {
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, obs := range s.observers {
		obs.OnStep(snap)
	}
}

func (s *Simulator) validate(a, b physics.Body, cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if !(cfg.G > 0) {
		return fmt.Errorf("gravitational constant must be positive, got %g", cfg.G)
	}
	return physics.Validate([]physics.Body{a, b})
}

// RunWithCallback streams every tick to callback until it returns false,
// the tick budget runs out, or the context is canceled.
func (s *Simulator) RunWithCallback(ctx context.Context, a, b physics.Body, cfg Config, callback func(Snapshot) bool) error {
	if err := s.validate(a, b, cfg); err != nil {
		return err
	}

	snap := Snapshot{Bodies: [2]physics.Body{a, b}}
	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(snap) {
			return nil
		}

		a, b = physics.StepPair(a, b, cfg.G)
		snap = Snapshot{Tick: i, Bodies: [2]physics.Body{a, b}}

		if cfg.ValidateState && !snap.IsValid() {
			return &SimulationError{Tick: i, Snapshot: snap, Wrapped: physics.ErrDegenerate}
		}
	}

	callback(snap)
	return nil
}
