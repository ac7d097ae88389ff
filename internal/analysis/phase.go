package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D plots the separation of the pair against its radial
// velocity, the rate at which the separation changes.
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []Point
}

// RadialVelocity is the component of b's velocity relative to a along the
// planar line joining them.
func RadialVelocity(a, b physics.Body) float64 {
	dx := b.Position[0] - a.Position[0]
	dz := b.Position[2] - a.Position[2]
	r := math.Sqrt(dx*dx + dz*dz)
	if r == 0 {
		return 0
	}
	dvx := b.Velocity[0] - a.Velocity[0]
	dvz := b.Velocity[2] - a.Velocity[2]
	return (dx*dvx + dz*dvz) / r
}

// GeneratePhasePortrait builds a separation/radial-velocity portrait from
// recorded snapshots.
func GeneratePhasePortrait(snaps []sim.Snapshot) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		XLabel: "separation",
		YLabel: "radial velocity",
		Points: make([]Point, 0, len(snaps)),
	}

	for _, s := range snaps {
		portrait.Points = append(portrait.Points, Point{
			X: physics.Separation(s.Bodies[0], s.Bodies[1]),
			Y: RadialVelocity(s.Bodies[0], s.Bodies[1]),
		})
	}

	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	// Find bounds
	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	// Create canvas
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Plot points
	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	// Convert to string
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection records the relative x position and velocity each time
// the relative z position crosses zero going positive.
type PoincareSection struct {
	Points []Point
}

func GeneratePoincareSection(snaps []sim.Snapshot) *PoincareSection {
	section := &PoincareSection{
		Points: make([]Point, 0),
	}
	if len(snaps) == 0 {
		return section
	}

	rel := func(s sim.Snapshot) (x, vx, z float64) {
		a, b := s.Bodies[0], s.Bodies[1]
		return b.Position[0] - a.Position[0], b.Velocity[0] - a.Velocity[0], b.Position[2] - a.Position[2]
	}

	_, _, prevZ := rel(snaps[0])
	for _, s := range snaps[1:] {
		x, vx, z := rel(s)
		if prevZ < 0 && z >= 0 {
			section.Points = append(section.Points, Point{X: x, Y: vx})
		}
		prevZ = z
	}

	return section
}

func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}

	portrait := &PhasePortrait2D{Points: section.Points}
	return PhasePortraitToASCII(portrait, width, height)
}
