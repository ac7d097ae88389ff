package driver

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// View is the camera as a renderer needs it.
type View struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

type Sphere struct {
	Position mgl64.Vec3
	Radius   float64
	Color    color.RGBA
}

// Frame is everything a renderer draws for one tick.
type Frame struct {
	Camera       View
	Spheres      []Sphere
	Trails       [][]mgl64.Vec3
	CenterOfMass mgl64.Vec3
	Separation   float64
	Tick         int
	Paused       bool
	Grabbed      bool
	Quit         bool
	Degenerate   bool
}
