package experiment

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/controllers"
	"github.com/san-kum/subsim/internal/rigid"
	"github.com/san-kum/subsim/internal/sim"
)

// Experiment assembles a world, a submarine and a simulator from a config.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	world     *rigid.World
	simulator *sim.Simulator
	logger    *zap.Logger
}

func New(cfg *config.Config, registry *Registry, logger *zap.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Setup validates the config and builds everything a run needs.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	sub, err := e.cfg.Submarine.Build()
	if err != nil {
		return fmt.Errorf("build submarine: %w", err)
	}

	e.world = rigid.NewWorld(integ)
	e.world.SetGravity(mgl64.Vec3{})

	e.simulator = sim.New(e.world, sub, e.cfg.Fluid, e.cfg.Dt, e.logger)
	for _, m := range e.registry.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	if ap := e.cfg.Autopilot; ap.Enabled {
		e.simulator.AddObserver(controllers.NewSpeedHold(sub, ap.TargetSpeed, ap.Kp, ap.Ki, ap.Kd, ap.MaxThrust))
	}

	fields := []zap.Field{zap.String("integrator", e.cfg.Integrator), zap.Bool("autopilot", e.cfg.Autopilot.Enabled)}
	if o, ok := integ.(interface{ Order() int }); ok {
		fields = append(fields, zap.Int("order", o.Order()))
	}
	e.logger.Debug("experiment ready", fields...)
	return e.simulator.Setup(e.cfg.Initial)
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.Duration)
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

func (e *Experiment) World() *rigid.World { return e.world }
