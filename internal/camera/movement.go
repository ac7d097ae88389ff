package camera

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/binstar/internal/vecmath"
)

// Direction is one of the six movement keys.
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
	Up
	Down
)

var directionNames = [...]string{"forward", "back", "left", "right", "up", "down"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Move offsets pos one step in dir. Horizontal moves follow the basis;
// vertical moves follow true world-up so looking up or down never tilts them.
func Move(pos mgl64.Vec3, b Basis, dir Direction, speed float64) mgl64.Vec3 {
	switch dir {
	case Forward:
		return pos.Add(b.Front.Mul(speed))
	case Back:
		return pos.Sub(b.Front.Mul(speed))
	case Left:
		return pos.Sub(b.Right.Mul(speed))
	case Right:
		return pos.Add(b.Right.Mul(speed))
	case Up:
		return pos.Add(vecmath.WorldUp.Mul(speed))
	case Down:
		return pos.Sub(vecmath.WorldUp.Mul(speed))
	}
	return pos
}
