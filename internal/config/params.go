package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownParam = errors.New("config: unknown parameter")

// params maps a dotted name to the scalar it addresses. Names match the
// yaml keys so a tuned value can be copied into a config file as is.
var params = map[string]func(c *Config) *float64{
	"dt":                                  func(c *Config) *float64 { return &c.Dt },
	"duration":                            func(c *Config) *float64 { return &c.Duration },
	"fluid.density":                       func(c *Config) *float64 { return &c.Fluid.Density },
	"submarine.geometry.mass":             func(c *Config) *float64 { return &c.Submarine.Geometry.Mass },
	"submarine.drag_coefficient":          func(c *Config) *float64 { return &c.Submarine.DragCoefficient },
	"submarine.lift_slope":                func(c *Config) *float64 { return &c.Submarine.LiftSlope },
	"submarine.spinning_drag_coefficient": func(c *Config) *float64 { return &c.Submarine.SpinningDragCoefficient },
	"submarine.buoyancy_position.y":       func(c *Config) *float64 { return &c.Submarine.BuoyancyPosition[1] },
	"submarine.weight_position.y":         func(c *Config) *float64 { return &c.Submarine.WeightPosition[1] },
	"submarine.thrust.x":                  func(c *Config) *float64 { return &c.Submarine.Thrust[0] },
	"submarine.propellor_torque.x":        func(c *Config) *float64 { return &c.Submarine.PropellorTorque[0] },
	"submarine.horizontal_fins.area":      func(c *Config) *float64 { return &c.Submarine.HorizontalFins.Area },
	"submarine.horizontal_fins.offset":    func(c *Config) *float64 { return &c.Submarine.HorizontalFins.Offset },
	"submarine.vertical_fins.area":        func(c *Config) *float64 { return &c.Submarine.VerticalFins.Area },
	"submarine.vertical_fins.offset":      func(c *Config) *float64 { return &c.Submarine.VerticalFins.Offset },
	"initial.roll":                        func(c *Config) *float64 { return &c.Initial.Roll },
	"initial.pitch":                       func(c *Config) *float64 { return &c.Initial.Pitch },
	"initial.yaw":                         func(c *Config) *float64 { return &c.Initial.Yaw },
	"initial.velocity.x":                  func(c *Config) *float64 { return &c.Initial.Velocity[0] },
	"autopilot.target_speed":              func(c *Config) *float64 { return &c.Autopilot.TargetSpeed },
	"autopilot.kp":                        func(c *Config) *float64 { return &c.Autopilot.Kp },
	"autopilot.ki":                        func(c *Config) *float64 { return &c.Autopilot.Ki },
	"autopilot.kd":                        func(c *Config) *float64 { return &c.Autopilot.Kd },
}

// SetParam sets one named scalar. Values are not range checked here;
// Validate does that for the whole config.
func (c *Config) SetParam(name string, v float64) error {
	p, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	*p(c) = v
	return nil
}

func (c *Config) Param(name string) (float64, error) {
	p, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return *p(c), nil
}

// SetParams applies every entry, stopping at the first unknown name.
func (c *Config) SetParams(values map[string]float64) error {
	for name, v := range values {
		if err := c.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
