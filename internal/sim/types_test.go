package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/binstar/internal/physics"
)

func TestSnapshot_IsValid(t *testing.T) {
	ok := physics.Body{Position: mgl64.Vec3{1, 0, 2}, Mass: 1}
	nan := physics.Body{Position: mgl64.Vec3{math.NaN(), 0, 0}, Mass: 1}
	inf := physics.Body{Velocity: mgl64.Vec3{0, 0, math.Inf(1)}, Mass: 1}

	tests := []struct {
		name  string
		snap  Snapshot
		valid bool
	}{
		{"zero", Snapshot{}, true},
		{"normal", Snapshot{Bodies: [2]physics.Body{ok, ok}}, true},
		{"NaN position", Snapshot{Bodies: [2]physics.Body{ok, nan}}, false},
		{"Inf velocity", Snapshot{Bodies: [2]physics.Body{inf, ok}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Tick: 12, Wrapped: physics.ErrDegenerate}

	if !errors.Is(err, physics.ErrDegenerate) {
		t.Error("expected error to unwrap to ErrDegenerate")
	}
	if got := err.Error(); got != "tick 12: "+physics.ErrDegenerate.Error() {
		t.Errorf("unexpected message %q", got)
	}
}

func TestResult_Final(t *testing.T) {
	r := &Result{}
	if r.Final().Tick != 0 {
		t.Error("expected zero snapshot for empty result")
	}

	r.Snapshots = []Snapshot{{Tick: 0}, {Tick: 5}}
	if r.Final().Tick != 5 {
		t.Errorf("expected tick 5, got %d", r.Final().Tick)
	}
}
