package sim

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/models"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/rigid"
)

// Simulator drives one submarine through a fluid at a fixed timestep.
// Every tick integrates the world first, then recomputes and applies the
// hydrodynamic forces for the next integration.
type Simulator struct {
	world   *rigid.World
	sub     *models.Submarine
	body    *rigid.Body
	fluid   physics.Fluid
	dt      float64
	initial Initial

	paused bool
	time   float64
	steps  int

	metrics   []Metric
	observers []Observer
	logger    *zap.Logger
}

func New(world *rigid.World, sub *models.Submarine, fluid physics.Fluid, dt float64, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dt <= 0 {
		dt = DefaultDt
	}
	return &Simulator{
		world:     world,
		sub:       sub,
		fluid:     fluid,
		dt:        dt,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Submarine() *models.Submarine { return s.sub }
func (s *Simulator) Fluid() physics.Fluid         { return s.fluid }
func (s *Simulator) SetFluid(f physics.Fluid)     { s.fluid = f }
func (s *Simulator) Dt() float64                  { return s.dt }
func (s *Simulator) Time() float64                { return s.time }
func (s *Simulator) Steps() int                   { return s.steps }

func (s *Simulator) Pause()       { s.paused = true }
func (s *Simulator) Play()        { s.paused = false }
func (s *Simulator) Paused() bool { return s.paused }
func (s *Simulator) TogglePause() { s.paused = !s.paused }

// Setup adds the submarine to the world and places it at initial.
func (s *Simulator) Setup(initial Initial) error {
	body, err := s.sub.AddToWorld(s.world)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	s.body = body
	s.initial = initial
	s.place()
	s.logger.Debug("simulator set up",
		zap.Float64("dt", s.dt),
		zap.Float64("density", s.fluid.Density),
		zap.Int("fins", len(s.sub.Fins())),
	)
	return nil
}

// Reset returns the submarine to its initial state and rewinds the clock.
func (s *Simulator) Reset() error {
	if s.body == nil {
		return fmt.Errorf("reset: %w", dynamo.ErrNotSetup)
	}
	s.place()
	s.time = 0
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset()
	}
	s.logger.Debug("simulator reset")
	return nil
}

func (s *Simulator) place() {
	s.body.ClearForces()
	s.body.SetPosition(s.initial.Position)
	s.body.SetOrientation(s.initial.Orientation())
	s.body.SetLinearVelocity(s.initial.Velocity)
	s.body.SetAngularVelocity(s.initial.AngularVelocity)
}

// Step advances one tick. A paused simulator does nothing.
func (s *Simulator) Step() error {
	if s.body == nil {
		return fmt.Errorf("step: %w", dynamo.ErrNotSetup)
	}
	if s.paused {
		return nil
	}

	if err := s.world.Step(s.dt); err != nil {
		return &dynamo.SimulationError{Step: s.steps, Time: s.time, State: s.body.State(), Wrapped: err}
	}
	if err := s.sub.UpdateForces(s.fluid); err != nil {
		return &dynamo.SimulationError{Step: s.steps, Time: s.time, State: s.body.State(), Wrapped: err}
	}
	s.time += s.dt
	s.steps++

	sample := s.Sample()
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}
	return nil
}

// Sample reads the submarine's current kinematics and force readings.
func (s *Simulator) Sample() Sample {
	k := s.sub.Kinematics()
	return Sample{
		Time:            s.time,
		Position:        k.Position(),
		Velocity:        k.Velocity(),
		AngularVelocity: k.AngularVelocity(),
		Roll:            k.Roll(),
		Pitch:           k.Pitch(),
		Yaw:             k.Yaw(),
		PitchAoA:        k.AngleOfAttack(physics.Horizontal),
		YawAoA:          k.AngleOfAttack(physics.Vertical),
		RollAoA:         k.RollAngleOfAttack(),
		Readings:        s.sub.Readings(),
	}
}

// Run resumes the simulator and steps it for duration seconds, recording
// a sample per tick. The context is checked between ticks.
func (s *Simulator) Run(ctx context.Context, duration float64) (*Result, error) {
	if s.body == nil {
		return nil, fmt.Errorf("run: %w", dynamo.ErrNotSetup)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f: %w", duration, dynamo.ErrParameterBounds)
	}

	steps := int(math.Round(duration / s.dt))
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
		Dt:      s.dt,
	}
	result.Samples = append(result.Samples, s.Sample())

	s.Play()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			s.logger.Error("tick failed", zap.Int("step", s.steps), zap.Error(err))
			return result, err
		}
		result.StepsTaken++
		result.Samples = append(result.Samples, s.Sample())
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	s.logger.Debug("run complete", zap.Int("steps", result.StepsTaken), zap.Float64("time", s.time))
	return result, nil
}
