package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/subsim/internal/config"
)

// simFlags are the overrides shared by every command that builds a run.
type simFlags struct {
	preset     string
	configFile string
	integrator string
	dt         float64
	duration   float64
	density    float64
	roll       float64
	pitch      float64
	yaw        float64
	speed      float64
	thrust     float64
	noFins     bool
	holdSpeed  float64
}

func (f *simFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.preset, "preset", "cruise", "start from a preset")
	fl.StringVar(&f.configFile, "config", "", "config file path (yaml), applied over the preset")
	fl.StringVar(&f.integrator, "integrator", config.DefaultIntegrator, "integrator (euler, midpoint, rk4)")
	fl.Float64Var(&f.dt, "dt", config.DefaultDt, "timestep in seconds")
	fl.Float64Var(&f.duration, "time", config.DefaultDuration, "duration in seconds")
	fl.Float64Var(&f.density, "density", 1000, "fluid density in kg/m³")
	fl.Float64Var(&f.roll, "roll", 0, "initial roll in radians")
	fl.Float64Var(&f.pitch, "pitch", 0, "initial pitch in radians")
	fl.Float64Var(&f.yaw, "yaw", 0, "initial yaw in radians")
	fl.Float64Var(&f.speed, "speed", 0, "initial forward speed in m/s")
	fl.Float64Var(&f.thrust, "thrust", 0, "forward thrust in N")
	fl.BoolVar(&f.noFins, "no-fins", false, "remove every fin")
	fl.Float64Var(&f.holdSpeed, "hold-speed", 0, "enable the autopilot at this target speed in m/s")
}

// resolve builds the effective config: preset, then file, then any flag
// set on the command line.
func (f *simFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(f.preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets())
	}

	if f.configFile != "" {
		loaded, err := config.LoadOver(f.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("integrator") {
		cfg.Integrator = f.integrator
	}
	if changed("dt") {
		cfg.Dt = f.dt
	}
	if changed("time") {
		cfg.Duration = f.duration
	}
	if changed("density") {
		cfg.Fluid.Density = f.density
	}
	if changed("roll") {
		cfg.Initial.Roll = f.roll
	}
	if changed("pitch") {
		cfg.Initial.Pitch = f.pitch
	}
	if changed("yaw") {
		cfg.Initial.Yaw = f.yaw
	}
	if changed("speed") {
		cfg.Initial.Velocity[0] = f.speed
	}
	if changed("thrust") {
		cfg.Submarine.Thrust[0] = f.thrust
	}
	if f.noFins {
		cfg.Submarine.HorizontalFins.Enabled = false
		cfg.Submarine.VerticalFins.Enabled = false
	}
	if changed("hold-speed") {
		cfg.Autopilot.Enabled = true
		cfg.Autopilot.TargetSpeed = f.holdSpeed
	}
	return cfg, nil
}
