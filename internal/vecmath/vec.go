// Package vecmath holds the small set of vector helpers shared by the
// physics and camera packages. Vectors are mgl64 values throughout.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the fixed vertical axis.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Planar drops the vertical component of v.
func Planar(v mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{v[0], 0, v[2]} }

// PlanarDistance is the x/z distance between a and b.
func PlanarDistance(a, b mgl64.Vec3) float64 {
	dx, dz := b[0]-a[0], b[2]-a[2]
	return math.Sqrt(dx*dx + dz*dz)
}

// IsFinite reports whether no component of v is NaN or infinite.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// SafeNormalize returns the unit vector along v, or the zero vector when v
// has zero length.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l != 0 {
		return v.Mul(1 / l)
	}
	return mgl64.Vec3{}
}
