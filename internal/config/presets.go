package config

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

var Presets = map[string]*Config{
	"binary": DefaultConfig(),
	"classic": withBodies("classic",
		BodyConfig{Position: mgl64.Vec3{-10, 0, 0}, Velocity: mgl64.Vec3{-0.1, 0, -0.1}, Mass: 1e10, Radius: 5, Color: "yellow"},
		BodyConfig{Position: mgl64.Vec3{10, 0, 0}, Velocity: mgl64.Vec3{0.1, 0, 0.1}, Mass: math.Pow(9, 10), Radius: 2.5, Color: "yellow"},
	),
	"wide": withBodies("wide",
		BodyConfig{Position: mgl64.Vec3{-40, 0, 0}, Velocity: mgl64.Vec3{0, 0, -0.18}, Mass: 1e10, Radius: 4, Color: "gold"},
		BodyConfig{Position: mgl64.Vec3{40, 0, 0}, Velocity: mgl64.Vec3{0, 0, 0.02}, Mass: 9e10, Radius: 6, Color: "orange"},
	),
	"inspiral": withBodies("inspiral",
		BodyConfig{Position: mgl64.Vec3{-10, 0, 0}, Velocity: mgl64.Vec3{0.01, 0, -0.05}, Mass: 5e10, Radius: 3, Color: "blue"},
		BodyConfig{Position: mgl64.Vec3{10, 0, 0}, Velocity: mgl64.Vec3{-0.01, 0, 0.05}, Mass: 5e10, Radius: 3, Color: "red"},
	),
}

// PresetInfo describes each preset for menus and listings.
var PresetInfo = map[string]string{
	"binary":   "default scenario, masses 1e10 and 9e10",
	"classic":  "light companion, 9^10 primary",
	"wide":     "wide bound orbit",
	"inspiral": "equal masses on a closing spiral",
}

func withBodies(name string, a, b BodyConfig) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Bodies = []BodyConfig{a, b}
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
