package rigid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/dynamo"
)

// World owns a set of bodies and advances them with a fixed-step integrator.
type World struct {
	integrator dynamo.Integrator
	bodies     []*Body
	gravity    mgl64.Vec3
	time       float64
}

// NewWorld creates a world with zero gravity.
func NewWorld(integrator dynamo.Integrator) *World {
	return &World{integrator: integrator}
}

func (w *World) SetGravity(g mgl64.Vec3) { w.gravity = g }
func (w *World) Gravity() mgl64.Vec3     { return w.gravity }
func (w *World) Time() float64           { return w.time }
func (w *World) Bodies() []*Body         { return w.bodies }

// Add registers a body. A body belongs to at most one world.
func (w *World) Add(b *Body) error {
	if b.world != nil {
		return dynamo.ErrAlreadyAdded
	}
	b.world = w
	w.bodies = append(w.bodies, b)
	return nil
}

func (w *World) Remove(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			b.world = nil
			return
		}
	}
}

// Step integrates every body by dt under its accumulated forces plus
// gravity, then clears the accumulators.
func (w *World) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("rigid: dt must be positive, got %f: %w", dt, dynamo.ErrParameterBounds)
	}
	for _, b := range w.bodies {
		if b.invMass > 0 {
			b.ApplyCentralForce(w.gravity.Mul(b.Mass()))
		}
		next := w.integrator.Step(b, b.state, b.control(), w.time, dt)
		b.ClearForces()
		if !next.IsValid() {
			return dynamo.ErrInvalidState
		}
		if b.invMass == 0 {
			continue
		}
		b.state = next
		b.normalize()
	}
	w.time += dt
	return nil
}
