// Package driver runs the per-frame loop shared by the window and terminal
// viewers: it turns raw input into camera motion, advances the pair one
// tick and describes what to draw.
package driver

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/binstar/internal/camera"
	"github.com/san-kum/binstar/internal/logger"
	"github.com/san-kum/binstar/internal/physics"
)

var movementKeys = []struct {
	key Key
	dir camera.Direction
}{
	{KeyW, camera.Forward},
	{KeyS, camera.Back},
	{KeyA, camera.Left},
	{KeyD, camera.Right},
	{KeySpace, camera.Up},
	{KeyLeftControl, camera.Down},
}

type Options struct {
	Bodies   [2]physics.Body
	Pose     camera.Pose
	Settings camera.Settings
	G        float64
	Trail    int
	Grabbed  bool
	Logger   *log.Logger
}

type Driver struct {
	opts Options
	log  *log.Logger

	bodies  [2]physics.Body
	pose    camera.Pose
	trails  [2][]mgl64.Vec3
	tick    int
	paused  bool
	grabbed bool

	lastMouse mgl64.Vec2
	haveMouse bool
}

func New(opts Options) *Driver {
	l := opts.Logger
	if l == nil {
		l = logger.Discard()
	}
	d := &Driver{opts: opts, log: l}
	d.Reset()
	return d
}

// Reset restores the initial bodies, pose and grab state.
func (d *Driver) Reset() {
	d.bodies = d.opts.Bodies
	d.pose = d.opts.Pose
	d.trails = [2][]mgl64.Vec3{}
	d.tick = 0
	d.paused = false
	d.grabbed = d.opts.Grabbed
	d.haveMouse = false
}

func (d *Driver) Bodies() [2]physics.Body { return d.bodies }
func (d *Driver) Pose() camera.Pose       { return d.pose }
func (d *Driver) Paused() bool            { return d.paused }
func (d *Driver) Grabbed() bool           { return d.grabbed }

// Tick consumes one frame of input and returns what to draw.
func (d *Driver) Tick(in Input) Frame {
	if in.Pressed.Has(KeyQ) || in.Pressed.Has(KeyEscape) {
		d.log.Info("quit requested", "tick", d.tick)
		f := d.Frame()
		f.Quit = true
		return f
	}
	if in.Pressed.Has(KeyTab) {
		d.grabbed = !d.grabbed
		d.haveMouse = false
		d.log.Info("mouse grab", "grabbed", d.grabbed)
	}
	if in.Pressed.Has(KeyP) {
		d.paused = !d.paused
		d.log.Info("pause", "paused", d.paused, "tick", d.tick)
	}
	if in.Pressed.Has(KeyR) {
		d.Reset()
		d.log.Info("reset")
	}

	delta := mgl64.Vec2{}
	if d.haveMouse {
		delta = in.Mouse.Sub(d.lastMouse)
	}
	d.lastMouse, d.haveMouse = in.Mouse, true

	if d.grabbed {
		d.pose.Look(delta, in.Dt, d.opts.Settings)
	}

	basis := d.pose.Basis(d.opts.Settings)
	for _, mk := range movementKeys {
		if in.Down.Has(mk.key) {
			d.pose.Position = camera.Move(d.pose.Position, basis, mk.dir, d.opts.Settings.MoveSpeed)
		}
	}

	if !d.paused {
		d.step()
	}

	return d.Frame()
}

func (d *Driver) step() {
	a, b := physics.StepPair(d.bodies[0], d.bodies[1], d.opts.G)
	d.bodies = [2]physics.Body{a, b}
	d.tick++

	for i, body := range d.bodies {
		d.trails[i] = appendBounded(d.trails[i], body.Position, d.opts.Trail)
	}

	if d.log.GetLevel() <= log.DebugLevel {
		for i, body := range d.bodies {
			d.log.Debug("body", "tick", d.tick, "i", i, "acc", body.Acceleration, "vel", body.Velocity, "pos", body.Position)
		}
	}
}

func appendBounded(trail []mgl64.Vec3, p mgl64.Vec3, limit int) []mgl64.Vec3 {
	if limit <= 0 {
		return trail[:0]
	}
	if len(trail) >= limit {
		copy(trail, trail[len(trail)-limit+1:])
		trail = trail[:limit-1]
	}
	return append(trail, p)
}

// Frame describes the current state without advancing it.
func (d *Driver) Frame() Frame {
	basis := d.pose.Basis(d.opts.Settings)

	f := Frame{
		Camera: View{
			Position: d.pose.Position,
			Target:   d.pose.Target(basis),
			Up:       basis.Up,
			Yaw:      d.pose.Yaw,
			Pitch:    d.pose.Pitch,
		},
		Spheres:      make([]Sphere, len(d.bodies)),
		Trails:       make([][]mgl64.Vec3, len(d.trails)),
		CenterOfMass: physics.CenterOfMass(d.bodies[:]),
		Separation:   physics.Separation(d.bodies[0], d.bodies[1]),
		Tick:         d.tick,
		Paused:       d.paused,
		Grabbed:      d.grabbed,
		Degenerate:   !d.bodies[0].IsFinite() || !d.bodies[1].IsFinite(),
	}

	for i, b := range d.bodies {
		f.Spheres[i] = Sphere{Position: b.Position, Radius: b.Radius, Color: b.Color}
		f.Trails[i] = append([]mgl64.Vec3(nil), d.trails[i]...)
	}

	return f
}
