package viz

import (
	"image/color"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/binstar/internal/driver"
)

// Scene holds what stays fixed between frames.
type Scene struct {
	Grid *Wireframe
	FOV  float64
}

func NewScene(gridSlices int, gridSpacing float64, theme Theme) *Scene {
	return &Scene{
		Grid: GridWireframe(gridSlices, gridSpacing, theme.Grid),
		FOV:  DefaultFOV,
	}
}

func rgbaColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(hexColor(int(c.R), int(c.G), int(c.B)))
}

// Draw renders one driver frame: grid, trails, then spheres far to near.
func (s *Scene) Draw(c *Canvas, f driver.Frame, theme Theme) {
	c.Clear()
	pr := NewProjector(f.Camera, c.DotWidth(), c.DotHeight(), s.FOV)

	if s.Grid != nil {
		Render3D(c, s.Grid, pr)
	}

	trails := NewWireframe()
	for _, t := range f.Trails {
		trails.AddPath(t, theme.Trail)
	}
	Render3D(c, trails, pr)

	type disc struct {
		x, y, r int
		depth   float64
		color   lipgloss.Color
	}
	discs := make([]disc, 0, len(f.Spheres))
	for _, sp := range f.Spheres {
		x, y, depth, ok := pr.Project(sp.Position)
		if !ok {
			continue
		}
		discs = append(discs, disc{x, y, pr.Radius(sp.Radius, depth), depth, rgbaColor(sp.Color)})
	}
	sort.Slice(discs, func(i, j int) bool { return discs[i].depth > discs[j].depth })
	for _, d := range discs {
		c.FillCircle(d.x, d.y, d.r, d.color)
	}

	if x, y, _, ok := pr.Project(f.CenterOfMass); ok {
		c.SetColor(x, y, theme.Accent)
	}
}
