package config

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/models"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/sim"
)

const (
	DefaultDt         = sim.DefaultDt
	DefaultDuration   = 20.0
	DefaultIntegrator = "rk4"
)

type Config struct {
	Integrator string          `yaml:"integrator" json:"integrator"`
	Dt         float64         `yaml:"dt" json:"dt"`
	Duration   float64         `yaml:"duration" json:"duration"`
	Fluid      physics.Fluid   `yaml:"fluid" json:"fluid"`
	Submarine  SubmarineConfig `yaml:"submarine" json:"submarine"`
	Initial    sim.Initial     `yaml:"initial" json:"initial"`
	Autopilot  Autopilot       `yaml:"autopilot" json:"autopilot"`
}

// Autopilot holds speed through the water by adjusting forward thrust.
type Autopilot struct {
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	TargetSpeed float64 `yaml:"target_speed" json:"target_speed"`
	Kp          float64 `yaml:"kp" json:"kp"`
	Ki          float64 `yaml:"ki" json:"ki"`
	Kd          float64 `yaml:"kd" json:"kd"`
	MaxThrust   float64 `yaml:"max_thrust" json:"max_thrust"`
}

func DefaultAutopilot() Autopilot {
	return Autopilot{TargetSpeed: 1, Kp: 400, Ki: 40, MaxThrust: 300}
}

// SubmarineConfig is every tunable of the hull, its forces and its fins.
type SubmarineConfig struct {
	Geometry                models.Geometry `yaml:"geometry" json:"geometry"`
	DragCoefficient         float64         `yaml:"drag_coefficient" json:"drag_coefficient"`
	LiftSlope               float64         `yaml:"lift_slope" json:"lift_slope"`
	SpinningDragCoefficient float64         `yaml:"spinning_drag_coefficient" json:"spinning_drag_coefficient"`
	BuoyancyPosition        mgl64.Vec3      `yaml:"buoyancy_position" json:"buoyancy_position"`
	WeightPosition          mgl64.Vec3      `yaml:"weight_position" json:"weight_position"`
	Thrust                  mgl64.Vec3      `yaml:"thrust" json:"thrust"`
	PropellorTorque         mgl64.Vec3      `yaml:"propellor_torque" json:"propellor_torque"`
	HorizontalFins          models.FinSet   `yaml:"horizontal_fins" json:"horizontal_fins"`
	VerticalFins            models.FinSet   `yaml:"vertical_fins" json:"vertical_fins"`
}

func DefaultFins() models.FinSet { return models.DefaultFinSet() }

func DefaultSubmarine() SubmarineConfig {
	return SubmarineConfig{
		Geometry:                models.DefaultGeometry(),
		DragCoefficient:         models.DefaultDragCoefficient,
		LiftSlope:               models.DefaultLiftSlope,
		SpinningDragCoefficient: models.DefaultSpinningDragCoefficient,
		BuoyancyPosition:        models.DefaultBuoyancyPosition(),
		Thrust:                  models.DefaultThrust(),
		PropellorTorque:         models.DefaultPropellorTorque(),
		HorizontalFins:          DefaultFins(),
		VerticalFins:            DefaultFins(),
	}
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Fluid:      physics.DefaultFluid(),
		Submarine:  DefaultSubmarine(),
		Autopilot:  DefaultAutopilot(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys absent from the file
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

func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var err error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %v: %w", name, v, dynamo.ErrParameterBounds))
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) || math.IsInf(v, 0) {
			err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %v: %w", name, v, dynamo.ErrParameterBounds))
		}
	}

	if c.Integrator == "" {
		err = multierr.Append(err, fmt.Errorf("integrator must be set: %w", dynamo.ErrParameterBounds))
	}
	positive("dt", c.Dt)
	positive("duration", c.Duration)
	positive("fluid.density", c.Fluid.Density)

	s := c.Submarine
	positive("submarine.geometry.length", s.Geometry.Length)
	positive("submarine.geometry.width", s.Geometry.Width)
	positive("submarine.geometry.height", s.Geometry.Height)
	positive("submarine.geometry.mass", s.Geometry.Mass)
	nonNegative("submarine.drag_coefficient", s.DragCoefficient)
	nonNegative("submarine.spinning_drag_coefficient", s.SpinningDragCoefficient)

	for _, set := range []struct {
		name string
		fins models.FinSet
	}{
		{"submarine.horizontal_fins", s.HorizontalFins},
		{"submarine.vertical_fins", s.VerticalFins},
	} {
		if !set.fins.Enabled {
			continue
		}
		nonNegative(set.name+".area", set.fins.Area)
		positive(set.name+".aspect_ratio", set.fins.AspectRatio)
		nonNegative(set.name+".drag_coefficient", set.fins.DragCoefficient)
		if math.Abs(set.fins.Offset) > s.Geometry.Length/2 {
			err = multierr.Append(err, fmt.Errorf("%s.offset %v lies outside the hull: %w", set.name, set.fins.Offset, models.ErrFinOutsideHull))
		}
	}
	if c.Autopilot.Enabled {
		nonNegative("autopilot.target_speed", c.Autopilot.TargetSpeed)
		positive("autopilot.max_thrust", c.Autopilot.MaxThrust)
	}
	return err
}

// Apply pushes every submarine setting onto sub.
func (s SubmarineConfig) Apply(sub *models.Submarine) error {
	if err := sub.SetGeometry(s.Geometry); err != nil {
		return err
	}
	sub.SetDragCoefficient(s.DragCoefficient)
	sub.SetLiftSlope(s.LiftSlope)
	sub.SetSpinningDragCoefficient(s.SpinningDragCoefficient)
	sub.SetBuoyancyPosition(s.BuoyancyPosition)
	sub.SetWeightPosition(s.WeightPosition)
	sub.SetThrust(s.Thrust)
	sub.SetPropellorTorque(s.PropellorTorque)
	if err := sub.SetHorizontalFins(s.HorizontalFins); err != nil {
		return fmt.Errorf("horizontal fins: %w", err)
	}
	if err := sub.SetVerticalFins(s.VerticalFins); err != nil {
		return fmt.Errorf("vertical fins: %w", err)
	}
	return nil
}

// Build creates a submarine from the settings.
func (s SubmarineConfig) Build() (*models.Submarine, error) {
	sub, err := models.New(s.Geometry)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(sub); err != nil {
		return nil, err
	}
	return sub, nil
}
