package metrics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
)

// MomentumDrift is the largest magnitude change in total linear momentum
// relative to the first observation. StepPair conserves it up to rounding.
type MomentumDrift struct {
	name     string
	initial  mgl64.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(s sim.Snapshot) {
	p := physics.Momentum(s.Bodies[:])
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	if d := p.Sub(m.initial).Len(); d > m.maxDrift {
		m.maxDrift = d
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = mgl64.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}

// Default returns the metric set used by the run and sweep commands.
func Default(gravity float64) []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(gravity),
		NewSeparation(),
		NewMomentumDrift(),
	}
}
