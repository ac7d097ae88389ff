package physics

import "github.com/go-gl/mathgl/mgl64"

// CenterOfMass returns the mass-weighted x/z average of bodies with y fixed
// at zero. It panics on an empty slice; use [CenterOfMassE] when the input
// may be empty.
func CenterOfMass(bodies []Body) mgl64.Vec3 {
	com, err := CenterOfMassE(bodies)
	if err != nil {
		panic(err)
	}
	return com
}

// CenterOfMassE is [CenterOfMass] returning [ErrNoBodies] on empty input.
func CenterOfMassE(bodies []Body) (mgl64.Vec3, error) {
	if len(bodies) == 0 {
		return mgl64.Vec3{}, ErrNoBodies
	}
	var mass, mx, mz float64
	for _, b := range bodies {
		mass += b.Mass
		mx += b.Mass * b.Position[0]
		mz += b.Mass * b.Position[2]
	}
	return mgl64.Vec3{mx / mass, 0, mz / mass}, nil
}
