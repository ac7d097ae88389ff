package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSeparation(t *testing.T) {
	m := NewSeparation()
	if m.Value() != 0 || m.Max() != 0 {
		t.Error("expected zero values before any observation")
	}

	for i, sep := range []float64{10, 4, 7} {
		a, b := restingPair(sep)
		m.Observe(snapshot(i, a, b))
	}

	if m.Value() != 4 {
		t.Errorf("expected min 4, got %f", m.Value())
	}
	if m.Max() != 10 {
		t.Errorf("expected max 10, got %f", m.Max())
	}
}

func TestSeparationIgnoresHeight(t *testing.T) {
	m := NewSeparation()
	a, b := restingPair(6)
	b.Position[1] = 100

	m.Observe(snapshot(0, a, b))
	if m.Value() != 6 {
		t.Errorf("expected planar separation 6, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(5)
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 with no samples, got %f", m.Value())
	}

	a, b := restingPair(4)
	m.Observe(snapshot(0, a, b))

	a2, b2 := restingPair(40)
	m.Observe(snapshot(1, a2, b2))

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", m.Value())
	}

	a3, b3 := restingPair(4)
	a3.Position = mgl64.Vec3{math.NaN(), 0, 0}
	m.Observe(snapshot(2, a3, b3))
	if math.Abs(m.Value()-1.0/3) > 1e-12 {
		t.Errorf("expected NaN state to count as violation, got %f", m.Value())
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	a, b := restingPair(4)
	a.Velocity = mgl64.Vec3{1, 0, 0}

	m.Observe(snapshot(0, a, b))
	a.Velocity = mgl64.Vec3{1, 0, 2}
	m.Observe(snapshot(1, a, b))

	if math.Abs(m.Value()-4) > 1e-12 {
		t.Errorf("expected drift 4, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDefault(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Default(1) {
		names[m.Name()] = true
	}
	for _, want := range []string{"energy_drift", "min_separation", "momentum_drift"} {
		if !names[want] {
			t.Errorf("expected metric %s", want)
		}
	}
}
