package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Control carries external inputs held constant across one integration step.
type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Body is a handle to a rigid body living in a dynamics engine. Every
// vector is in world space and every read reflects the body's current
// integrated state. Applied forces and torques accumulate until the engine
// integrates the body.
type Body interface {
	Transform() Transform
	LinearVelocity() mgl64.Vec3
	AngularVelocity() mgl64.Vec3
	InverseMass() float64
	ApplyForce(force, worldPoint mgl64.Vec3)
	ApplyTorque(torque mgl64.Vec3)
}

// Transform places a body in the world.
type Transform struct {
	Origin   mgl64.Vec3
	Rotation mgl64.Quat
}

func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// Apply maps a body-local point to world space: rotate, then translate.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Origin)
}

// Rotate maps a body-local direction to world orientation without translating.
func (t Transform) Rotate(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(v)
}

// Basis returns the orientation as a rotation matrix whose columns are the
// body axes expressed in world space.
func (t Transform) Basis() mgl64.Mat3 {
	return t.Rotation.Normalize().Mat4().Mat3()
}
