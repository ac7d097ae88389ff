package metrics

import (
	"math"

	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
)

// Separation records the closest and widest planar distance between the
// bodies. Value reports the minimum.
type Separation struct {
	name    string
	min     float64
	max     float64
	samples int
}

func NewSeparation() *Separation {
	s := &Separation{name: "min_separation"}
	s.Reset()
	return s
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(snap sim.Snapshot) {
	d := physics.Separation(snap.Bodies[0], snap.Bodies[1])
	s.min = math.Min(s.min, d)
	s.max = math.Max(s.max, d)
	s.samples++
}

func (s *Separation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.min
}

func (s *Separation) Max() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.max
}

func (s *Separation) Reset() {
	s.min = math.Inf(1)
	s.max = 0
	s.samples = 0
}

// Stability is the fraction of snapshots in which both bodies stay within
// threshold of the center of mass.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(snap sim.Snapshot) {
	s.samples++
	com := physics.CenterOfMass(snap.Bodies[:])
	for _, b := range snap.Bodies {
		if !(b.Position.Sub(com).Len() <= s.threshold) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
