package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/binstar/internal/camera"
	"github.com/san-kum/binstar/internal/driver"
	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
)

const (
	DefaultTicks      = 20000
	DefaultLookSpeed  = 0.1
	DefaultMoveSpeed  = 0.1
	DefaultBasisScale = 3.0
	DefaultYaw        = 1.18
	DefaultWidth      = 1260
	DefaultHeight     = 768
	DefaultFPS        = 60
	DefaultTrail      = 600
)

// ErrInvalid indicates a configuration that cannot describe a sensible run.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Name        string         `yaml:"name"`
	Ticks       int            `yaml:"ticks"`
	SampleEvery int            `yaml:"sample_every"`
	Gravity     float64        `yaml:"gravity"`
	TrailLength int            `yaml:"trail_length"`
	Bodies      []BodyConfig   `yaml:"bodies"`
	Camera      CameraConfig   `yaml:"camera"`
	Window      WindowConfig   `yaml:"window"`
	Validation  ValidateConfig `yaml:"validation"`
}

type BodyConfig struct {
	Position mgl64.Vec3 `yaml:"position,flow"`
	Velocity mgl64.Vec3 `yaml:"velocity,flow"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Color    string     `yaml:"color"`
}

type CameraConfig struct {
	Position   mgl64.Vec3 `yaml:"position,flow"`
	Yaw        float64    `yaml:"yaw"`
	Pitch      float64    `yaml:"pitch"`
	LookSpeed  float64    `yaml:"look_speed"`
	MoveSpeed  float64    `yaml:"move_speed"`
	BasisScale float64    `yaml:"basis_scale"`
}

type WindowConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Title       string  `yaml:"title"`
	FPS         int     `yaml:"fps"`
	HighDPI     bool    `yaml:"high_dpi"`
	GridSlices  int     `yaml:"grid_slices"`
	GridSpacing float64 `yaml:"grid_spacing"`
}

type ValidateConfig struct {
	StopOnNaN bool `yaml:"stop_on_nan"`
}

// Palette maps config color names to RGBA values.
var Palette = map[string]color.RGBA{
	"yellow": {253, 249, 0, 255},
	"gold":   {255, 203, 0, 255},
	"orange": {255, 161, 0, 255},
	"red":    {230, 41, 55, 255},
	"blue":   {0, 121, 241, 255},
	"white":  {255, 255, 255, 255},
	"gray":   {130, 130, 130, 255},
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "binary",
		Ticks:       DefaultTicks,
		SampleEvery: 1,
		Gravity:     physics.DefaultG,
		TrailLength: DefaultTrail,
		Bodies: []BodyConfig{
			{Position: mgl64.Vec3{-10, 0, 0}, Velocity: mgl64.Vec3{-0.1, 0, -0.1}, Mass: 1e10, Radius: 5, Color: "yellow"},
			{Position: mgl64.Vec3{10, 0, 0}, Velocity: mgl64.Vec3{0.1, 0, 0.1}, Mass: 9e10, Radius: 2.5, Color: "yellow"},
		},
		Camera: CameraConfig{
			Position:   mgl64.Vec3{0, 1, 0},
			Yaw:        DefaultYaw,
			LookSpeed:  DefaultLookSpeed,
			MoveSpeed:  DefaultMoveSpeed,
			BasisScale: DefaultBasisScale,
		},
		Window: WindowConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			Title:       "Binary Star System",
			FPS:         DefaultFPS,
			HighDPI:     true,
			GridSlices:  2000,
			GridSpacing: 10,
		},
		Validation: ValidateConfig{StopOnNaN: true},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys absent from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}

// Validate reports the first reason c cannot be run. Mass and coincidence
// failures wrap the physics sentinels.
func (c *Config) Validate() error {
	if len(c.Bodies) != 2 {
		return fmt.Errorf("%w: need exactly 2 bodies, got %d", ErrInvalid, len(c.Bodies))
	}
	if err := physics.Validate(c.PhysicsBodies()); err != nil {
		return err
	}
	for i, b := range c.Bodies {
		if b.Color != "" {
			if _, ok := Palette[b.Color]; !ok {
				return fmt.Errorf("%w: body %d: unknown color %q", ErrInvalid, i, b.Color)
			}
		}
	}
	switch {
	case !(c.Gravity > 0):
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalid, c.Gravity)
	case c.Ticks <= 0:
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalid, c.Ticks)
	case c.SampleEvery < 0:
		return fmt.Errorf("%w: sample_every must not be negative, got %d", ErrInvalid, c.SampleEvery)
	case c.Camera.LookSpeed <= 0 || c.Camera.MoveSpeed <= 0 || c.Camera.BasisScale <= 0:
		return fmt.Errorf("%w: camera speeds and basis scale must be positive", ErrInvalid)
	case c.Camera.Pitch < camera.MinPitch || c.Camera.Pitch > camera.MaxPitch:
		return fmt.Errorf("%w: camera pitch %g outside [%g, %g]", ErrInvalid, c.Camera.Pitch, camera.MinPitch, camera.MaxPitch)
	}
	return nil
}

// PhysicsBodies builds the initial bodies. Unknown colors fall back to
// yellow.
func (c *Config) PhysicsBodies() []physics.Body {
	bodies := make([]physics.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		col, ok := Palette[b.Color]
		if !ok {
			col = Palette["yellow"]
		}
		bodies[i] = *physics.NewBody(b.Position, b.Velocity, b.Mass, b.Radius, col)
	}
	return bodies
}

func (c *Config) CameraSettings() camera.Settings {
	return camera.Settings{
		LookSpeed:  c.Camera.LookSpeed,
		MoveSpeed:  c.Camera.MoveSpeed,
		BasisScale: c.Camera.BasisScale,
	}
}

func (c *Config) CameraPose() camera.Pose {
	return camera.Pose{Position: c.Camera.Position, Yaw: c.Camera.Yaw, Pitch: c.Camera.Pitch}
}

// DriverOptions wires the scenario into a frame driver. The mouse starts
// grabbed, as in the window viewer.
func (c *Config) DriverOptions(l *log.Logger) driver.Options {
	bodies := c.PhysicsBodies()
	opts := driver.Options{
		Pose:     c.CameraPose(),
		Settings: c.CameraSettings(),
		G:        c.Gravity,
		Trail:    c.TrailLength,
		Grabbed:  true,
		Logger:   l,
	}
	copy(opts.Bodies[:], bodies)
	return opts
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Ticks:         c.Ticks,
		SampleEvery:   c.SampleEvery,
		G:             c.Gravity,
		ValidateState: c.Validation.StopOnNaN,
	}
}

// Pair returns the two initial bodies. Callers validate first.
func (c *Config) Pair() (physics.Body, physics.Body) {
	bodies := c.PhysicsBodies()
	return bodies[0], bodies[1]
}

// ColorNames lists the palette in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(Palette))
	for name := range Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
