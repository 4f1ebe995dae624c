package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/dynamo"
)

// Force is a phenomenon that pushes on a body at a point.
type Force interface {
	Name() string
	Bind(body dynamo.Body)
	Body() dynamo.Body
	// Apply computes the force for the current tick and accumulates it
	// into the bound body.
	Apply(fluid Fluid) error
	// Value is the last computed world-frame force.
	Value() mgl64.Vec3
	// LocalPosition is the application point as an offset from the center
	// of mass, rotated into world orientation.
	LocalPosition() mgl64.Vec3
	// WorldPosition is the absolute world application point.
	WorldPosition() mgl64.Vec3
}

// Torque is a phenomenon that twists a body without a point of application.
type Torque interface {
	Name() string
	Bind(body dynamo.Body)
	Body() dynamo.Body
	Apply(fluid Fluid) error
	Value() mgl64.Vec3
}

// calculator computes a model's value for one tick. It reports false when
// the input is degenerate and nothing should be applied.
type calculator interface {
	calculate(k Kinematics, fluid Fluid) bool
}

type forceBase struct {
	name     string
	body     dynamo.Body
	value    mgl64.Vec3
	position mgl64.Vec3
}

func (f *forceBase) Name() string             { return f.name }
func (f *forceBase) Bind(body dynamo.Body)    { f.body = body }
func (f *forceBase) Body() dynamo.Body        { return f.body }
func (f *forceBase) Value() mgl64.Vec3        { return f.value }
func (f *forceBase) Position() mgl64.Vec3     { return f.position }
func (f *forceBase) SetPosition(p mgl64.Vec3) { f.position = p }

func (f *forceBase) LocalPosition() mgl64.Vec3 {
	if f.body == nil {
		return f.position
	}
	return f.body.Transform().Rotate(f.position)
}

func (f *forceBase) WorldPosition() mgl64.Vec3 {
	if f.body == nil {
		return f.position
	}
	return f.body.Transform().Apply(f.position)
}

func (f *forceBase) apply(c calculator, fluid Fluid) error {
	if f.body == nil {
		return fmt.Errorf("force %q: %w", f.name, dynamo.ErrUnboundBody)
	}
	if !c.calculate(NewKinematics(f.body), fluid) {
		return nil
	}
	f.body.ApplyForce(f.value, f.WorldPosition())
	return nil
}

type torqueBase struct {
	name  string
	body  dynamo.Body
	value mgl64.Vec3
}

func (t *torqueBase) Name() string          { return t.name }
func (t *torqueBase) Bind(body dynamo.Body) { t.body = body }
func (t *torqueBase) Body() dynamo.Body     { return t.body }
func (t *torqueBase) Value() mgl64.Vec3     { return t.value }

func (t *torqueBase) apply(c calculator, fluid Fluid) error {
	if t.body == nil {
		return fmt.Errorf("torque %q: %w", t.name, dynamo.ErrUnboundBody)
	}
	if !c.calculate(NewKinematics(t.body), fluid) {
		return nil
	}
	t.body.ApplyTorque(t.value)
	return nil
}
