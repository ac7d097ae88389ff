package driver

import "github.com/go-gl/mathgl/mgl64"

// Key identifies one of the keys the driver reacts to.
type Key uint

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyLeftControl
	KeyTab
	KeyP
	KeyR
	KeyQ
	KeyEscape
)

var keyNames = [...]string{"w", "a", "s", "d", "space", "left_control", "tab", "p", "r", "q", "escape"}

func (k Key) String() string {
	if int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Keys is a set of keys.
type Keys uint32

func NewKeys(ks ...Key) Keys {
	var s Keys
	for _, k := range ks {
		s = s.With(k)
	}
	return s
}

func (s Keys) With(k Key) Keys { return s | 1<<k }
func (s Keys) Has(k Key) bool  { return s&(1<<k) != 0 }
func (s Keys) Empty() bool     { return s == 0 }

// Input is what an engine reports for one frame. Mouse is the absolute
// cursor position; the driver derives the delta. Down holds keys that are
// held this frame, Pressed those that went down this frame.
type Input struct {
	Dt      float64
	Mouse   mgl64.Vec2
	Down    Keys
	Pressed Keys
}
