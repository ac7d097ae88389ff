package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/binstar/internal/driver"
)

const (
	DefaultFOV = math.Pi / 3
	nearPlane  = 0.1
	farPlane   = 10000
)

// Projector maps world points onto a canvas as seen from a driver camera.
type Projector struct {
	view, proj mgl64.Mat4
	width      int
	height     int
	focal      float64
}

// NewProjector builds a perspective projection for a canvas of w x h dots.
// Braille dots are close to square, so the aspect ratio is taken in dots.
func NewProjector(cam driver.View, w, h int, fovy float64) Projector {
	return Projector{
		view:   mgl64.LookAtV(cam.Position, cam.Target, cam.Up),
		proj:   mgl64.Perspective(fovy, float64(w)/float64(h), nearPlane, farPlane),
		width:  w,
		height: h,
		focal:  float64(h) / 2 / math.Tan(fovy/2),
	}
}

// Project returns the dot coordinates and eye-space depth of p. ok is false
// when p is behind the near plane or not finite.
func (pr Projector) Project(p mgl64.Vec3) (x, y int, depth float64, ok bool) {
	eye := pr.view.Mul4x1(p.Vec4(1))
	depth = -eye[2]
	if !(depth > nearPlane) || math.IsInf(depth, 0) {
		return 0, 0, depth, false
	}

	clip := pr.proj.Mul4x1(eye)
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]
	sx := (nx + 1) / 2 * float64(pr.width)
	sy := (1 - ny) / 2 * float64(pr.height)
	if math.IsNaN(sx) || math.IsNaN(sy) {
		return 0, 0, depth, false
	}

	return int(math.Floor(sx)), int(math.Floor(sy)), depth, true
}

// Radius is the on-canvas size, in dots, of a world length r at depth.
func (pr Projector) Radius(r, depth float64) int {
	if depth <= 0 {
		return 0
	}
	return int(math.Round(r * pr.focal / depth))
}

// onScreen reports whether x, y is within a margin of the canvas. Lines
// with far-off endpoints are skipped rather than rasterized.
func (pr Projector) onScreen(x, y, margin int) bool {
	return x >= -margin && y >= -margin && x < pr.width+margin && y < pr.height+margin
}

type Edge struct {
	Start, End mgl64.Vec3
	Color      lipgloss.Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e mgl64.Vec3, c lipgloss.Color) {
	w.Edges = append(w.Edges, Edge{s, e, c})
}
func (w *Wireframe) AddPoint(p mgl64.Vec3, c lipgloss.Color) { w.Edges = append(w.Edges, Edge{p, p, c}) }
func (w *Wireframe) Clear()                                  { w.Edges = w.Edges[:0] }

// AddPath joins consecutive points.
func (w *Wireframe) AddPath(points []mgl64.Vec3, c lipgloss.Color) {
	for i := 1; i < len(points); i++ {
		w.AddEdge(points[i-1], points[i], c)
	}
}

// GridWireframe is a square grid on the y=0 plane centered on the origin,
// with slices cells of size spacing along each axis.
func GridWireframe(slices int, spacing float64, c lipgloss.Color) *Wireframe {
	w := NewWireframe()
	half := float64(slices/2) * spacing
	for i := -slices / 2; i <= slices/2; i++ {
		o := float64(i) * spacing
		w.AddEdge(mgl64.Vec3{o, 0, -half}, mgl64.Vec3{o, 0, half}, c)
		w.AddEdge(mgl64.Vec3{-half, 0, o}, mgl64.Vec3{half, 0, o}, c)
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          lipgloss.Color
}

// Render3D draws the wireframe far to near so closer edges tint shared
// cells. Edges with an endpoint behind the camera are dropped.
func Render3D(c *Canvas, w *Wireframe, pr Projector) {
	if c == nil || w == nil {
		return
	}
	margin := max(pr.width, pr.height) * 4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, ok1 := pr.Project(e.Start)
		x2, y2, d2, ok2 := pr.Project(e.End)
		if !ok1 || !ok2 {
			continue
		}
		if !pr.onScreen(x1, y1, margin) || !pr.onScreen(x2, y2, margin) {
			continue
		}
		proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
	}
}
