package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Propellor is the reaction torque of the propulsion unit. Its value is set
// by configuration and never computed.
type Propellor struct {
	torqueBase
}

func NewPropellor() *Propellor {
	return &Propellor{torqueBase{name: "Propellor"}}
}

func (p *Propellor) SetValue(v mgl64.Vec3) { p.value = v }

func (p *Propellor) Apply(fluid Fluid) error { return p.apply(p, fluid) }

func (p *Propellor) calculate(_ Kinematics, _ Fluid) bool { return true }

// SpinningDrag resists rotation about the two cross-body axes.
type SpinningDrag struct {
	torqueBase
	pitchArea   float64
	yawArea     float64
	coefficient float64
	length      float64
}

func NewSpinningDrag() *SpinningDrag {
	return &SpinningDrag{torqueBase: torqueBase{name: "Spinning Drag"}}
}

func (s *SpinningDrag) PitchArea() float64       { return s.pitchArea }
func (s *SpinningDrag) SetPitchArea(a float64)   { s.pitchArea = a }
func (s *SpinningDrag) YawArea() float64         { return s.yawArea }
func (s *SpinningDrag) SetYawArea(a float64)     { s.yawArea = a }
func (s *SpinningDrag) Coefficient() float64     { return s.coefficient }
func (s *SpinningDrag) SetCoefficient(c float64) { s.coefficient = c }
func (s *SpinningDrag) Length() float64          { return s.length }
func (s *SpinningDrag) SetLength(l float64)      { s.length = l }

func (s *SpinningDrag) Apply(fluid Fluid) error { return s.apply(s, fluid) }

func (s *SpinningDrag) calculate(k Kinematics, fluid Fluid) bool {
	if s.length <= 0 {
		return false
	}
	w := k.AngularVelocity()
	pitch := spinningDrag(fluid.Density, s.pitchArea, s.coefficient, w.Z(), s.length)
	yaw := spinningDrag(fluid.Density, s.yawArea, s.coefficient, w.Y(), s.length)
	s.value = mgl64.Vec3{0, yaw, pitch}
	return true
}

func spinningDrag(density, area, coefficient, omega, length float64) float64 {
	value := 0.5 * density * area * coefficient * omega * omega / length
	if omega < 0 {
		return value
	}
	return -value
}

// FinDamping opposes roll rate with the induced drag of a spinning fin.
type FinDamping struct {
	torqueBase
	area        float64
	aspectRatio float64
	radius      float64
}

func NewFinDamping(name string) *FinDamping {
	if name == "" {
		name = "Fin Damping"
	}
	return &FinDamping{torqueBase: torqueBase{name: name}}
}

func (f *FinDamping) Area() float64            { return f.area }
func (f *FinDamping) SetArea(a float64)        { f.area = a }
func (f *FinDamping) AspectRatio() float64     { return f.aspectRatio }
func (f *FinDamping) SetAspectRatio(r float64) { f.aspectRatio = r }
func (f *FinDamping) Radius() float64          { return f.radius }
func (f *FinDamping) SetRadius(r float64)      { f.radius = r }

// Span is the fin's reach from its root.
func (f *FinDamping) Span() float64 {
	return math.Sqrt(f.aspectRatio * f.area)
}

func (f *FinDamping) Apply(fluid Fluid) error { return f.apply(f, fluid) }

func (f *FinDamping) calculate(k Kinematics, fluid Fluid) bool {
	wx := k.AngularVelocity().X()
	span := f.Span()
	reach := f.radius + span
	torque := 2 * fluid.Density * f.area * wx * wx * reach * reach * (f.radius + span/2)
	if wx > 0 {
		torque = -torque
	}
	f.value = mgl64.Vec3{torque, 0, 0}
	return true
}
