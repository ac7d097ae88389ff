package camera

import "github.com/go-gl/mathgl/mgl64"

// Pitch limits, just inside ±π/2 so the basis never degenerates.
const (
	MinPitch = -1.5
	MaxPitch = 1.5
)

// ApplyLook turns a mouse displacement into new yaw and pitch. Moving the
// pointer up (negative screen y) looks up.
func ApplyLook(yaw, pitch float64, mouseDelta mgl64.Vec2, dt, lookSpeed float64) (float64, float64) {
	yaw += mouseDelta[0] * dt * lookSpeed
	pitch += mouseDelta[1] * dt * -lookSpeed
	return yaw, mgl64.Clamp(pitch, MinPitch, MaxPitch)
}
