package config

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

var Presets = map[string]*Config{
	"cruise": DefaultConfig(),
	"rolled": preset(func(c *Config) {
		c.Initial.Roll = 0.6
		c.Submarine.PropellorTorque = mgl64.Vec3{}
	}),
	"pitched": preset(func(c *Config) {
		c.Initial.Pitch = -0.2
		c.Initial.Velocity = mgl64.Vec3{1, 0, 0}
	}),
	"finless": preset(func(c *Config) {
		c.Submarine.HorizontalFins.Enabled = false
		c.Submarine.VerticalFins.Enabled = false
	}),
	"coast": preset(func(c *Config) {
		c.Submarine.Thrust = mgl64.Vec3{}
		c.Submarine.PropellorTorque = mgl64.Vec3{}
		c.Initial.Velocity = mgl64.Vec3{2, 0, 0}
		c.Duration = 30
	}),
	"crossflow": preset(func(c *Config) {
		c.Submarine.Thrust = mgl64.Vec3{}
		c.Submarine.PropellorTorque = mgl64.Vec3{}
		c.Initial.Velocity = mgl64.Vec3{1.5, 0, 0.3}
	}),
	"autopilot": preset(func(c *Config) {
		c.Autopilot.Enabled = true
		c.Autopilot.TargetSpeed = 1.5
		c.Duration = 40
	}),
	"seawater": preset(func(c *Config) {
		c.Fluid.Density = 1025
	}),
}

func preset(tweak func(c *Config)) *Config {
	c := DefaultConfig()
	tweak(c)
	return c
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
