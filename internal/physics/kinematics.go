package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/dynamo"
)

// Kinematics derives attitude and flow quantities from a body. Nothing is
// cached: every call reads the body afresh.
type Kinematics struct {
	body dynamo.Body
}

func NewKinematics(body dynamo.Body) Kinematics {
	return Kinematics{body: body}
}

// Pitch is the heading of the nose in the x-y plane.
func (k Kinematics) Pitch() float64 {
	r := k.body.Transform().Basis()
	return WrapAngle(math.Atan2(r.At(1, 0), r.At(0, 0)))
}

// Yaw is the heading of the nose in the x-z plane, measured in the same
// sense as atan2(vz, vx).
func (k Kinematics) Yaw() float64 {
	r := k.body.Transform().Basis()
	return WrapAngle(math.Atan2(r.At(2, 0), r.At(0, 0)))
}

// Roll is the rotation about the nose.
func (k Kinematics) Roll() float64 {
	r := k.body.Transform().Basis()
	return WrapAngle(math.Atan2(r.At(2, 1), r.At(2, 2)))
}

func (k Kinematics) Velocity() mgl64.Vec3        { return k.body.LinearVelocity() }
func (k Kinematics) AngularVelocity() mgl64.Vec3 { return k.body.AngularVelocity() }
func (k Kinematics) Position() mgl64.Vec3        { return k.body.Transform().Origin }

// PlaneVelocity projects the linear velocity onto a plane of motion:
// (vx, vy) for Horizontal, (vx, vz) for Vertical.
func (k Kinematics) PlaneVelocity(p Plane) mgl64.Vec2 {
	v := k.body.LinearVelocity()
	if p == Vertical {
		return mgl64.Vec2{v.X(), v.Z()}
	}
	return mgl64.Vec2{v.X(), v.Y()}
}

// BodyAngle is Pitch for Horizontal and Yaw for Vertical.
func (k Kinematics) BodyAngle(p Plane) float64 {
	if p == Vertical {
		return k.Yaw()
	}
	return k.Pitch()
}

// AngleOfAttack is the angle between the body axis and the planar flow
// velocity, wrapped into (-π, π].
func (k Kinematics) AngleOfAttack(p Plane) float64 {
	v := k.PlaneVelocity(p)
	return WrapAngle(k.BodyAngle(p) - math.Atan2(v.Y(), v.X()))
}

// RollVelocity projects the linear velocity onto the y-z plane.
func (k Kinematics) RollVelocity() mgl64.Vec2 {
	v := k.body.LinearVelocity()
	return mgl64.Vec2{v.Y(), v.Z()}
}

func (k Kinematics) RollAngleOfAttack() float64 {
	v := k.RollVelocity()
	return WrapAngle(k.Roll() - math.Atan2(v.Y(), v.X()))
}

// Mass is zero for a body of infinite mass.
func (k Kinematics) Mass() float64 {
	inv := k.body.InverseMass()
	if inv == 0 {
		return 0
	}
	return 1 / inv
}
