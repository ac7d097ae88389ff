package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) drawScene() {
	rl.BeginMode3D(a.Camera)
	rl.DrawGrid(int32(a.cfg.Window.GridSlices), float32(a.cfg.Window.GridSpacing))
	a.drawTrails()
	a.drawBodies()
	rl.EndMode3D()
}

func (a *App) drawBodies() {
	for _, s := range a.Frame.Spheres {
		rl.DrawSphere(toVector3(s.Position), float32(s.Radius), toColor(s.Color))
	}
	com := toVector3(a.Frame.CenterOfMass)
	rl.DrawSphere(com, 0.3, ColGrid)
}

func (a *App) drawTrails() {
	for i, trail := range a.Frame.Trails {
		if i >= len(a.Frame.Spheres) {
			break
		}
		c := toColor(a.Frame.Spheres[i].Color)
		for j := 1; j < len(trail); j++ {
			rl.DrawLine3D(toVector3(trail[j-1]), toVector3(trail[j]), fade(c, j, len(trail)))
		}
	}
}
