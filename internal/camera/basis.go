package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Basis is the observer's movement frame. Each vector is pre-scaled by the
// scale passed to DeriveBasis and must be used as is.
type Basis struct {
	Front, Right, Up mgl64.Vec3
}

// DeriveBasis computes the scaled front/right/up frame for yaw and pitch.
func DeriveBasis(yaw, pitch float64, worldUp mgl64.Vec3, scale float64) Basis {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)

	front := mgl64.Vec3{cy * cp, sp, sy * cp}.Normalize()
	right := front.Cross(worldUp).Normalize()
	up := right.Cross(front).Normalize()

	return Basis{
		Front: front.Mul(scale),
		Right: right.Mul(scale),
		Up:    up.Mul(scale),
	}
}
