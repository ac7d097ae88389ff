package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/binstar/internal/vecmath"
)

// StepPair advances both bodies by one tick. Each body sees the other's
// pre-tick position and mass, so the result does not depend on call order.
func StepPair(a, b Body, g float64) (Body, Body) {
	na, nb := a, b
	na.Update(b.Position, b.Mass, g)
	nb.Update(a.Position, a.Mass, g)
	return na, nb
}

// Validate checks the construction preconditions of a body set: every mass
// positive and no two bodies sharing a planar position.
func Validate(bodies []Body) error {
	if len(bodies) == 0 {
		return ErrNoBodies
	}
	for i, b := range bodies {
		if !(b.Mass > 0) {
			return fmt.Errorf("body %d: mass %g: %w", i, b.Mass, ErrInvalidMass)
		}
	}
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if vecmath.PlanarDistance(bodies[i].Position, bodies[j].Position) == 0 {
				return fmt.Errorf("bodies %d and %d coincide: %w", i, j, ErrDegenerate)
			}
		}
	}
	return nil
}

// Separation is the planar distance between a and b.
func Separation(a, b Body) float64 {
	return vecmath.PlanarDistance(a.Position, b.Position)
}

// Energy is the kinetic plus planar potential energy of the pair.
func Energy(a, b Body, g float64) float64 {
	ke := 0.5*a.Mass*a.Velocity.Dot(a.Velocity) + 0.5*b.Mass*b.Velocity.Dot(b.Velocity)
	pe := -g * a.Mass * b.Mass / Separation(a, b)
	return ke + pe
}

// Momentum is the total linear momentum of bodies.
func Momentum(bodies []Body) mgl64.Vec3 {
	var p mgl64.Vec3
	for _, b := range bodies {
		p = p.Add(b.Velocity.Mul(b.Mass))
	}
	return p
}
