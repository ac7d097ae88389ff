package physics

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/binstar/internal/vecmath"
)

// DefaultG is the gravitational constant in SI units.
const DefaultG = 6.67e-11

// Body is one massive point object. Radius and Color are rendering hints and
// play no part in the physics.
type Body struct {
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
	Mass         float64
	Radius       float64
	Color        color.RGBA
}

// NewBody returns a body at rest acceleration-wise. mass must be positive;
// this is not checked here, see [Validate].
func NewBody(pos, vel mgl64.Vec3, mass, radius float64, c color.RGBA) *Body {
	return &Body{
		Position: pos,
		Velocity: vel,
		Mass:     mass,
		Radius:   radius,
		Color:    c,
	}
}

// PlanarAcceleration returns the x and z acceleration that a mass at other
// exerts on a point at self. d is the squared planar distance raised to 1.5,
// which is the distance cubed.
func PlanarAcceleration(self, other mgl64.Vec3, otherMass, g float64) (ax, az float64) {
	dx := other[0] - self[0]
	dz := other[2] - self[2]
	d := math.Pow(dx*dx+dz*dz, 1.5)
	return g * otherMass * dx / d, g * otherMass * dz / d
}

// Update attracts b toward a mass at otherPos and advances it by one tick:
// velocity first, then position from the new velocity. Acceleration is
// overwritten on x and z only.
func (b *Body) Update(otherPos mgl64.Vec3, otherMass, g float64) {
	b.Acceleration[0], b.Acceleration[2] = PlanarAcceleration(b.Position, otherPos, otherMass, g)
	b.Velocity = b.Velocity.Add(b.Acceleration)
	b.Position = b.Position.Add(b.Velocity)
}

// IsFinite reports whether position, velocity and acceleration are all free
// of NaN and Inf.
func (b Body) IsFinite() bool {
	return vecmath.IsFinite(b.Position) && vecmath.IsFinite(b.Velocity) && vecmath.IsFinite(b.Acceleration)
}
