package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/binstar/internal/driver"
)

// keyMap binds raylib key codes to driver keys.
var keyMap = []struct {
	code int32
	key  driver.Key
}{
	{rl.KeyW, driver.KeyW},
	{rl.KeyA, driver.KeyA},
	{rl.KeyS, driver.KeyS},
	{rl.KeyD, driver.KeyD},
	{rl.KeySpace, driver.KeySpace},
	{rl.KeyLeftControl, driver.KeyLeftControl},
	{rl.KeyTab, driver.KeyTab},
	{rl.KeyP, driver.KeyP},
	{rl.KeyR, driver.KeyR},
	{rl.KeyQ, driver.KeyQ},
	{rl.KeyEscape, driver.KeyEscape},
}

func collectKeys(query func(code int32) bool) driver.Keys {
	var ks driver.Keys
	for _, m := range keyMap {
		if query(m.code) {
			ks = ks.With(m.key)
		}
	}
	return ks
}

// pollInput reads one frame of window state.
func pollInput() driver.Input {
	mouse := rl.GetMousePosition()
	return driver.Input{
		Dt:      float64(rl.GetFrameTime()),
		Mouse:   mgl64.Vec2{float64(mouse.X), float64(mouse.Y)},
		Down:    collectKeys(rl.IsKeyDown),
		Pressed: collectKeys(rl.IsKeyPressed),
	}
}

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

func toCamera(v driver.View, fovy float32) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(v.Position),
		Target:     toVector3(v.Target),
		Up:         toVector3(v.Up),
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// fade scales alpha so older trail points draw fainter.
func fade(c rl.Color, i, n int) rl.Color {
	if n <= 1 {
		return c
	}
	a := float64(c.A) * (0.15 + 0.85*float64(i)/float64(n-1))
	return rl.NewColor(c.R, c.G, c.B, uint8(a))
}
