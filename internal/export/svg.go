package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/binstar/internal/sim"
	"github.com/san-kum/binstar/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill color.RGBA) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, Hex(fill))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type bounds struct {
	minX, maxX, minZ, maxZ float64
}

func (b bounds) scale(x, z float64, width, height int) (float64, float64) {
	px := (x - b.minX) / (b.maxX - b.minX) * float64(width)
	py := float64(height) - (z-b.minZ)/(b.maxZ-b.minZ)*float64(height)
	return px, py
}

func orbitBounds(snaps []sim.Snapshot) bounds {
	first := snaps[0].Bodies[0].Position
	b := bounds{minX: first[0], maxX: first[0], minZ: first[2], maxZ: first[2]}
	for _, s := range snaps {
		for _, body := range s.Bodies {
			x, z := body.Position[0], body.Position[2]
			b.minX = min(b.minX, x)
			b.maxX = max(b.maxX, x)
			b.minZ = min(b.minZ, z)
			b.maxZ = max(b.maxZ, z)
		}
	}

	rangeX := b.maxX - b.minX
	rangeZ := b.maxZ - b.minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minZ -= rangeZ * 0.1
	b.maxZ += rangeZ * 0.1
	return b
}

// OrbitsToSVG draws the top-down (x/z) track of both bodies on shared axes,
// stroked in each body's color, with a marker at the final position.
func OrbitsToSVG(snaps []sim.Snapshot, width, height int) string {
	if len(snaps) < 2 {
		return ""
	}

	b := orbitBounds(snaps)

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i := range snaps[0].Bodies {
		stroke := Hex(snaps[0].Bodies[i].Color)
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)

		for j, s := range snaps {
			p := s.Bodies[i].Position
			x, y := b.scale(p[0], p[2], width, height)
			if j == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		last := snaps[len(snaps)-1].Bodies[i].Position
		x, y := b.scale(last[0], last[2], width, height)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", x, y, stroke)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// OrbitsToCanvas plots the same top-down tracks onto a dot canvas of
// cols x rows cells.
func OrbitsToCanvas(snaps []sim.Snapshot, cols, rows int) *viz.Canvas {
	c := viz.NewCanvas(cols, rows)
	if len(snaps) < 2 {
		return c
	}
	b := orbitBounds(snaps)
	w, h := c.DotWidth()-1, c.DotHeight()-1
	for i := range snaps[0].Bodies {
		col := lipgloss.Color(Hex(snaps[0].Bodies[i].Color))
		p := snaps[0].Bodies[i].Position
		px, py := b.scale(p[0], p[2], w, h)
		for _, s := range snaps[1:] {
			p = s.Bodies[i].Position
			x, y := b.scale(p[0], p[2], w, h)
			c.DrawLine(int(px), int(py), int(x), int(y), col)
			px, py = x, y
		}
	}
	return c
}
