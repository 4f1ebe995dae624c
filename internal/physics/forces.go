package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Weight pulls the body down with its full mass at a body-local point.
type Weight struct {
	forceBase
}

func NewWeight() *Weight {
	return &Weight{forceBase{name: "Weight"}}
}

func (w *Weight) Apply(fluid Fluid) error { return w.apply(w, fluid) }

func (w *Weight) calculate(k Kinematics, _ Fluid) bool {
	w.value = mgl64.Vec3{0, -Gravity * k.Mass(), 0}
	return true
}

// Buoyancy lifts the body with its full mass, so a buoyancy point above the
// weight point produces a righting moment.
type Buoyancy struct {
	forceBase
}

func NewBuoyancy() *Buoyancy {
	return &Buoyancy{forceBase{name: "Buoyancy"}}
}

func (b *Buoyancy) Apply(fluid Fluid) error { return b.apply(b, fluid) }

func (b *Buoyancy) calculate(k Kinematics, _ Fluid) bool {
	b.value = mgl64.Vec3{0, Gravity * k.Mass(), 0}
	return true
}

// Thrust is a fixed body-local force that turns with the hull.
type Thrust struct {
	forceBase
	thrust mgl64.Vec3
}

func NewThrust() *Thrust {
	return &Thrust{forceBase: forceBase{name: "Thrust"}}
}

func (t *Thrust) Thrust() mgl64.Vec3     { return t.thrust }
func (t *Thrust) SetThrust(v mgl64.Vec3) { t.thrust = v }

func (t *Thrust) Apply(fluid Fluid) error { return t.apply(t, fluid) }

func (t *Thrust) calculate(_ Kinematics, _ Fluid) bool {
	t.value = t.body.Transform().Rotate(t.thrust)
	return true
}

// Drag opposes linear velocity, quadratic in speed.
type Drag struct {
	forceBase
	area        float64
	coefficient float64
}

func NewDrag(name string) *Drag {
	if name == "" {
		name = "Drag"
	}
	return &Drag{forceBase: forceBase{name: name}}
}

func (d *Drag) Area() float64            { return d.area }
func (d *Drag) SetArea(a float64)        { d.area = a }
func (d *Drag) Coefficient() float64     { return d.coefficient }
func (d *Drag) SetCoefficient(c float64) { d.coefficient = c }

func (d *Drag) Apply(fluid Fluid) error { return d.apply(d, fluid) }

func (d *Drag) calculate(k Kinematics, fluid Fluid) bool {
	v := k.Velocity()
	speed := v.Len()
	if speed == 0 {
		return false
	}
	magnitude := 0.5 * fluid.Density * d.area * d.coefficient * speed * speed
	d.value = v.Mul(-magnitude / speed)
	return true
}

// Lift acts perpendicular to the planar flow, evaluated independently in
// the pitch and yaw planes and summed. A plane at or beyond StallAngle
// contributes nothing.
type Lift struct {
	forceBase
	pitchArea float64
	yawArea   float64
	slope     float64
}

func NewLift(name string) *Lift {
	if name == "" {
		name = "Lift"
	}
	return &Lift{forceBase: forceBase{name: name}}
}

func (l *Lift) PitchArea() float64     { return l.pitchArea }
func (l *Lift) SetPitchArea(a float64) { l.pitchArea = a }
func (l *Lift) YawArea() float64       { return l.yawArea }
func (l *Lift) SetYawArea(a float64)   { l.yawArea = a }
func (l *Lift) Slope() float64         { return l.slope }
func (l *Lift) SetSlope(s float64)     { l.slope = s }

func (l *Lift) Apply(fluid Fluid) error { return l.apply(l, fluid) }

func (l *Lift) calculate(k Kinematics, fluid Fluid) bool {
	var total mgl64.Vec3

	if lift, ok := PlaneLift(fluid.Density, k.AngleOfAttack(Horizontal), l.slope, l.pitchArea, k.PlaneVelocity(Horizontal)); ok {
		total = total.Add(mgl64.Vec3{lift.X(), lift.Y(), 0})
	}
	if lift, ok := PlaneLift(fluid.Density, k.AngleOfAttack(Vertical), l.slope, l.yawArea, k.PlaneVelocity(Vertical)); ok {
		total = total.Add(mgl64.Vec3{lift.X(), 0, lift.Y()})
	}

	l.value = total
	return true
}

// PlaneLift is the 2D lift in one plane of motion. It reports false when
// the plane has no flow or the angle of attack is stalled.
func PlaneLift(density, aoa, slope, area float64, v mgl64.Vec2) (mgl64.Vec2, bool) {
	speed := v.Len()
	if speed == 0 || math.IsNaN(aoa) || math.Abs(aoa) >= StallAngle {
		return mgl64.Vec2{}, false
	}
	cl := aoa * slope
	magnitude := 0.5 * density * area * cl * speed * speed
	dir := v.Mul(1 / speed)
	return mgl64.Vec2{-dir.Y(), dir.X()}.Mul(magnitude), true
}
