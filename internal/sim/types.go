package sim

import (
	"fmt"

	"github.com/san-kum/binstar/internal/physics"
)

// Snapshot is the state of both bodies after Tick ticks.
type Snapshot struct {
	Tick   int
	Bodies [2]physics.Body
}

func (s Snapshot) IsValid() bool {
	return s.Bodies[0].IsFinite() && s.Bodies[1].IsFinite()
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

type Config struct {
	Ticks         int
	SampleEvery   int
	G             float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         10000,
		SampleEvery:   1,
		G:             physics.DefaultG,
		ValidateState: true,
	}
}

type Result struct {
	Snapshots   []Snapshot
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Final returns the last recorded snapshot.
func (r *Result) Final() Snapshot {
	if len(r.Snapshots) == 0 {
		return Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}

// SimulationError wraps an error with the tick at which it was detected.
type SimulationError struct {
	Tick     int
	Snapshot Snapshot
	Wrapped  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
