// Package rigid is a small six degree of freedom rigid-body engine. It
// integrates free bodies under accumulated forces and torques; there is no
// collision handling.
package rigid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/dynamo"
)

// State layout: position(3) orientation(w, x, y, z) velocity(3) angular velocity(3).
const (
	idxPos   = 0
	idxQuat  = 3
	idxVel   = 7
	idxOmega = 10

	StateDim   = 13
	ControlDim = 6
)

// Body is a free rigid body with a diagonal body-frame inertia tensor. It
// implements dynamo.Body for force models and dynamo.System for the
// integrators; the control vector passed to Derive is the accumulated
// world force followed by the accumulated world torque.
type Body struct {
	state      dynamo.State
	invMass    float64
	inertia    mgl64.Vec3
	invInertia mgl64.Vec3
	force      mgl64.Vec3
	torque     mgl64.Vec3
	world      *World
}

// NewBody creates a body at the origin with identity orientation. A zero
// mass makes the body static.
func NewBody(mass float64, inertia mgl64.Vec3) *Body {
	b := &Body{state: make(dynamo.State, StateDim)}
	b.state[idxQuat] = 1
	b.SetMass(mass, inertia)
	return b
}

// SetMass replaces the mass and body-frame inertia without touching the
// state. A zero mass makes the body static.
func (b *Body) SetMass(mass float64, inertia mgl64.Vec3) {
	b.invMass = 0
	if mass > 0 {
		b.invMass = 1 / mass
	}
	b.inertia = inertia
	b.invInertia = mgl64.Vec3{}
	for i := 0; i < 3; i++ {
		if inertia[i] > 0 {
			b.invInertia[i] = 1 / inertia[i]
		}
	}
}

// NewCapsuleX creates a body shaped as a capsule lying along the local X
// axis.
func NewCapsuleX(mass, radius, length float64) *Body {
	return NewBody(mass, CapsuleXInertia(mass, radius, length))
}

// CapsuleXInertia approximates a capsule along X by its bounding box.
func CapsuleXInertia(mass, radius, length float64) mgl64.Vec3 {
	half := mgl64.Vec3{radius + length/2, radius, radius}
	return BoxInertia(mass, half)
}

// BoxInertia returns the principal moments of a solid box with the given
// half extents.
func BoxInertia(mass float64, halfExtents mgl64.Vec3) mgl64.Vec3 {
	lx, ly, lz := 2*halfExtents[0], 2*halfExtents[1], 2*halfExtents[2]
	return mgl64.Vec3{
		mass / 12 * (ly*ly + lz*lz),
		mass / 12 * (lx*lx + lz*lz),
		mass / 12 * (lx*lx + ly*ly),
	}
}

func (b *Body) StateDim() int   { return StateDim }
func (b *Body) ControlDim() int { return ControlDim }

// Derive evaluates the Newton-Euler equations for state x under the world
// force u[0:3] and world torque u[3:6].
func (b *Body) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	dx := make(dynamo.State, StateDim)

	q := quatAt(x).Normalize()
	v := vecAt(x, idxVel)
	w := vecAt(x, idxOmega)

	var f, tau mgl64.Vec3
	if len(u) >= ControlDim {
		f = mgl64.Vec3{u[0], u[1], u[2]}
		tau = mgl64.Vec3{u[3], u[4], u[5]}
	}

	dq := mgl64.Quat{W: 0, V: w}.Mul(q).Scale(0.5)

	// Euler's equations in the body frame.
	inv := q.Inverse()
	wb := inv.Rotate(w)
	tb := inv.Rotate(tau)
	iw := mgl64.Vec3{b.inertia[0] * wb[0], b.inertia[1] * wb[1], b.inertia[2] * wb[2]}
	rhs := tb.Sub(wb.Cross(iw))
	dwb := mgl64.Vec3{b.invInertia[0] * rhs[0], b.invInertia[1] * rhs[1], b.invInertia[2] * rhs[2]}
	dw := q.Rotate(dwb)

	dv := f.Mul(b.invMass)

	copy(dx[idxPos:], v[:])
	dx[idxQuat] = dq.W
	copy(dx[idxQuat+1:], dq.V[:])
	copy(dx[idxVel:], dv[:])
	copy(dx[idxOmega:], dw[:])
	return dx
}

func (b *Body) Transform() dynamo.Transform {
	return dynamo.Transform{
		Origin:   vecAt(b.state, idxPos),
		Rotation: quatAt(b.state),
	}
}

func (b *Body) LinearVelocity() mgl64.Vec3  { return vecAt(b.state, idxVel) }
func (b *Body) AngularVelocity() mgl64.Vec3 { return vecAt(b.state, idxOmega) }
func (b *Body) InverseMass() float64        { return b.invMass }

// Mass returns zero for a static body.
func (b *Body) Mass() float64 {
	if b.invMass == 0 {
		return 0
	}
	return 1 / b.invMass
}

func (b *Body) LocalInertia() mgl64.Vec3 { return b.inertia }

// ApplyForce accumulates a world force acting at a world point. The lever
// arm about the center of mass contributes torque.
func (b *Body) ApplyForce(force, worldPoint mgl64.Vec3) {
	b.force = b.force.Add(force)
	arm := worldPoint.Sub(vecAt(b.state, idxPos))
	b.torque = b.torque.Add(arm.Cross(force))
}

func (b *Body) ApplyCentralForce(force mgl64.Vec3) {
	b.force = b.force.Add(force)
}

func (b *Body) ApplyTorque(torque mgl64.Vec3) {
	b.torque = b.torque.Add(torque)
}

// TotalForce and TotalTorque report what has accumulated since the last step.
func (b *Body) TotalForce() mgl64.Vec3  { return b.force }
func (b *Body) TotalTorque() mgl64.Vec3 { return b.torque }

func (b *Body) ClearForces() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}

func (b *Body) State() dynamo.State { return b.state.Clone() }

func (b *Body) SetState(x dynamo.State) error {
	if len(x) != StateDim {
		return fmt.Errorf("rigid: state has %d values, want %d: %w", len(x), StateDim, dynamo.ErrDimensionMismatch)
	}
	if !x.IsValid() {
		return dynamo.ErrInvalidState
	}
	b.state = x.Clone()
	b.normalize()
	return nil
}

func (b *Body) SetPosition(p mgl64.Vec3) { copy(b.state[idxPos:], p[:]) }

func (b *Body) SetOrientation(q mgl64.Quat) {
	setQuat(b.state, q.Normalize())
}

func (b *Body) SetLinearVelocity(v mgl64.Vec3)  { copy(b.state[idxVel:], v[:]) }
func (b *Body) SetAngularVelocity(w mgl64.Vec3) { copy(b.state[idxOmega:], w[:]) }

func (b *Body) control() dynamo.Control {
	return dynamo.Control{b.force[0], b.force[1], b.force[2], b.torque[0], b.torque[1], b.torque[2]}
}

func (b *Body) normalize() {
	q := quatAt(b.state)
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	setQuat(b.state, q.Normalize())
}

func vecAt(x dynamo.State, i int) mgl64.Vec3 {
	return mgl64.Vec3{x[i], x[i+1], x[i+2]}
}

func quatAt(x dynamo.State) mgl64.Quat {
	return mgl64.Quat{W: x[idxQuat], V: vecAt(x, idxQuat+1)}
}

func setQuat(x dynamo.State, q mgl64.Quat) {
	x[idxQuat] = q.W
	copy(x[idxQuat+1:], q.V[:])
}
