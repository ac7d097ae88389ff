package camera

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/binstar/internal/vecmath"
)

// Settings are the observer's speed constants.
type Settings struct {
	LookSpeed  float64
	MoveSpeed  float64
	BasisScale float64
}

// DefaultSettings are the viewer defaults: look and move speed 0.1 with the
// basis scaled by three.
func DefaultSettings() Settings {
	return Settings{LookSpeed: 0.1, MoveSpeed: 0.1, BasisScale: 3}
}

// Pose is the observer's stored state. Front, right and up are derived, see
// [Pose.Basis].
type Pose struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// Look applies a mouse displacement to the pose.
func (p *Pose) Look(mouseDelta mgl64.Vec2, dt float64, s Settings) {
	p.Yaw, p.Pitch = ApplyLook(p.Yaw, p.Pitch, mouseDelta, dt, s.LookSpeed)
}

// Basis derives the current movement frame.
func (p Pose) Basis(s Settings) Basis {
	return DeriveBasis(p.Yaw, p.Pitch, vecmath.WorldUp, s.BasisScale)
}

// Move steps the pose in each of dirs using basis b.
func (p *Pose) Move(b Basis, s Settings, dirs ...Direction) {
	for _, d := range dirs {
		p.Position = Move(p.Position, b, d, s.MoveSpeed)
	}
}

// Target is the point the observer looks at.
func (p Pose) Target(b Basis) mgl64.Vec3 {
	return p.Position.Add(b.Front)
}
