package models

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/rigid"
)

// Geometry is the hull's overall dimensions and mass.
type Geometry struct {
	Length float64 `yaml:"length" json:"length"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Mass   float64 `yaml:"mass" json:"mass"`
}

func (g Geometry) validate() error {
	if g.Length <= 0 || g.Width <= 0 || g.Height <= 0 || g.Mass <= 0 {
		return fmt.Errorf("geometry %+v: %w", g, dynamo.ErrParameterBounds)
	}
	return nil
}

// FinSet is a pair of identical fins. Horizontal sets mount north and
// south, vertical sets east and west.
type FinSet struct {
	Enabled   bool `yaml:"enabled" json:"enabled"`
	FinParams `yaml:",inline"`
}

// Submarine aggregates every force and torque acting on the hull and
// applies them in a fixed order each tick.
type Submarine struct {
	geometry Geometry

	dragCoefficient         float64
	liftSlope               float64
	spinningDragCoefficient float64

	propellor *physics.Propellor
	weight    *physics.Weight
	buoyancy  *physics.Buoyancy
	thrust    *physics.Thrust
	drag      *physics.Drag
	lift      *physics.Lift
	spinning  *physics.SpinningDrag

	horizontal FinSet
	vertical   FinSet
	fins       []*Fin

	body dynamo.Body
}

// New creates a submarine with the given geometry and no fins.
func New(g Geometry) (*Submarine, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	s := &Submarine{
		geometry:  g,
		propellor: physics.NewPropellor(),
		weight:    physics.NewWeight(),
		buoyancy:  physics.NewBuoyancy(),
		thrust:    physics.NewThrust(),
		drag:      physics.NewDrag("Drag"),
		lift:      physics.NewLift("Lift"),
		spinning:  physics.NewSpinningDrag(),
	}
	if err := s.derive(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Submarine) Geometry() Geometry { return s.geometry }
func (s *Submarine) Length() float64    { return s.geometry.Length }
func (s *Submarine) Width() float64     { return s.geometry.Width }
func (s *Submarine) Height() float64    { return s.geometry.Height }
func (s *Submarine) Mass() float64      { return s.geometry.Mass }

// SetGeometry replaces every dimension at once. Derived areas, lever arms
// and fin mounting points are recomputed before it returns.
func (s *Submarine) SetGeometry(g Geometry) error {
	if err := g.validate(); err != nil {
		return err
	}
	prev := s.geometry
	s.geometry = g
	if err := s.derive(); err != nil {
		s.geometry = prev
		_ = s.derive()
		return err
	}
	if body, ok := s.body.(*rigid.Body); ok && body != nil {
		body.SetMass(g.Mass, rigid.CapsuleXInertia(g.Mass, s.bodyRadius(), g.Length))
	}
	return nil
}

// bodyRadius is the capsule radius used for the rigid body.
func (s *Submarine) bodyRadius() float64 {
	return (s.geometry.Width + s.geometry.Height) / 2
}

func (s *Submarine) SetLength(l float64) error {
	g := s.geometry
	g.Length = l
	return s.SetGeometry(g)
}

func (s *Submarine) SetWidth(w float64) error {
	g := s.geometry
	g.Width = w
	return s.SetGeometry(g)
}

func (s *Submarine) SetHeight(h float64) error {
	g := s.geometry
	g.Height = h
	return s.SetGeometry(g)
}

// SetMass also resizes the rigid body when the hull is in a world, so the
// next UpdateForces weighs the new mass.
func (s *Submarine) SetMass(m float64) error {
	g := s.geometry
	g.Mass = m
	return s.SetGeometry(g)
}

func (s *Submarine) DragCoefficient() float64 { return s.dragCoefficient }

func (s *Submarine) SetDragCoefficient(c float64) {
	s.dragCoefficient = c
	s.drag.SetCoefficient(c)
}

func (s *Submarine) LiftSlope() float64 { return s.liftSlope }

func (s *Submarine) SetLiftSlope(slope float64) {
	s.liftSlope = slope
	s.lift.SetSlope(slope)
}

func (s *Submarine) SpinningDragCoefficient() float64 { return s.spinningDragCoefficient }

func (s *Submarine) SetSpinningDragCoefficient(c float64) {
	s.spinningDragCoefficient = c
	s.spinning.SetCoefficient(c)
}

func (s *Submarine) BuoyancyPosition() mgl64.Vec3     { return s.buoyancy.Position() }
func (s *Submarine) SetBuoyancyPosition(p mgl64.Vec3) { s.buoyancy.SetPosition(p) }
func (s *Submarine) WeightPosition() mgl64.Vec3       { return s.weight.Position() }
func (s *Submarine) SetWeightPosition(p mgl64.Vec3)   { s.weight.SetPosition(p) }
func (s *Submarine) Thrust() mgl64.Vec3               { return s.thrust.Thrust() }
func (s *Submarine) SetThrust(v mgl64.Vec3)           { s.thrust.SetThrust(v) }
func (s *Submarine) PropellorTorque() mgl64.Vec3      { return s.propellor.Value() }
func (s *Submarine) SetPropellorTorque(v mgl64.Vec3)  { s.propellor.SetValue(v) }

func (s *Submarine) HorizontalFins() FinSet { return s.horizontal }
func (s *Submarine) VerticalFins() FinSet   { return s.vertical }

func (s *Submarine) SetHorizontalFins(set FinSet) error {
	prev := s.horizontal
	s.horizontal = set
	if err := s.mountFins(); err != nil {
		s.horizontal = prev
		_ = s.mountFins()
		return err
	}
	return nil
}

func (s *Submarine) SetVerticalFins(set FinSet) error {
	prev := s.vertical
	s.vertical = set
	if err := s.mountFins(); err != nil {
		s.vertical = prev
		_ = s.mountFins()
		return err
	}
	return nil
}

// Fins returns the mounted fins in application order.
func (s *Submarine) Fins() []*Fin { return s.fins }

func (s *Submarine) derive() error {
	g := s.geometry
	pitchArea := math.Pi * g.Width * g.Length
	yawArea := math.Pi * g.Height * g.Length

	s.drag.SetArea(math.Pi * g.Width * g.Height)
	s.lift.SetPitchArea(pitchArea)
	s.lift.SetYawArea(yawArea)
	s.lift.SetPosition(mgl64.Vec3{g.Length / 4, 0, 0})
	s.thrust.SetPosition(mgl64.Vec3{-g.Length / 2, 0, 0})
	s.spinning.SetPitchArea(pitchArea)
	s.spinning.SetYawArea(yawArea)
	s.spinning.SetLength(g.Length)

	return s.mountFins()
}

func (s *Submarine) mountFins() error {
	var fins []*Fin
	mount := func(set FinSet, orientations ...Orientation) error {
		if !set.Enabled {
			return nil
		}
		for _, o := range orientations {
			fin := NewFin(o, set.FinParams)
			if err := fin.CalculatePosition(s, set.Offset); err != nil {
				return err
			}
			fins = append(fins, fin)
		}
		return nil
	}
	if err := mount(s.horizontal, North, South); err != nil {
		return err
	}
	if err := mount(s.vertical, East, West); err != nil {
		return err
	}

	s.fins = fins
	if s.body != nil {
		for _, f := range s.fins {
			f.Bind(s.body)
		}
	}
	return nil
}

// Forces returns the hull forces in application order.
func (s *Submarine) Forces() []physics.Force {
	return []physics.Force{s.weight, s.buoyancy, s.thrust, s.drag, s.lift}
}

// Torques returns the hull torques in application order.
func (s *Submarine) Torques() []physics.Torque {
	return []physics.Torque{s.propellor, s.spinning}
}

// AddToWorld creates the hull's rigid body, a capsule along X, and binds
// every force to it.
func (s *Submarine) AddToWorld(w *rigid.World) (*rigid.Body, error) {
	if s.body != nil {
		return nil, fmt.Errorf("submarine: %w", dynamo.ErrAlreadyAdded)
	}
	body := rigid.NewCapsuleX(s.geometry.Mass, s.bodyRadius(), s.geometry.Length)
	if err := w.Add(body); err != nil {
		return nil, err
	}
	s.Bind(body)
	return body, nil
}

// RemoveFromWorld detaches the hull's body and unbinds every force.
func (s *Submarine) RemoveFromWorld(w *rigid.World) error {
	body, ok := s.body.(*rigid.Body)
	if !ok || body == nil {
		return fmt.Errorf("submarine: not in a world: %w", dynamo.ErrNotSetup)
	}
	w.Remove(body)
	s.Bind(nil)
	return nil
}

// Bind attaches every force, torque and fin to body.
func (s *Submarine) Bind(body dynamo.Body) {
	s.body = body
	for _, f := range s.Forces() {
		f.Bind(body)
	}
	for _, t := range s.Torques() {
		t.Bind(body)
	}
	for _, f := range s.fins {
		f.Bind(body)
	}
}

func (s *Submarine) Body() dynamo.Body { return s.body }

func (s *Submarine) Kinematics() physics.Kinematics {
	return physics.NewKinematics(s.body)
}

// UpdateForces applies, in order: propellor, weight, buoyancy, thrust,
// drag, lift, spinning drag, then each fin.
func (s *Submarine) UpdateForces(fluid physics.Fluid) error {
	steps := []func(physics.Fluid) error{
		s.propellor.Apply,
		s.weight.Apply,
		s.buoyancy.Apply,
		s.thrust.Apply,
		s.drag.Apply,
		s.lift.Apply,
		s.spinning.Apply,
	}
	for _, apply := range steps {
		if err := apply(fluid); err != nil {
			return err
		}
	}
	for _, f := range s.fins {
		if err := f.ApplyForces(fluid); err != nil {
			return err
		}
	}
	return nil
}

// Readings returns the latest output of every model in application order.
func (s *Submarine) Readings() []physics.Reading {
	readings := []physics.Reading{
		physics.ReadTorque(s.propellor),
		physics.ReadForce(s.weight),
		physics.ReadForce(s.buoyancy),
		physics.ReadForce(s.thrust),
		physics.ReadForce(s.drag),
		physics.ReadForce(s.lift),
		physics.ReadTorque(s.spinning),
	}
	for _, f := range s.fins {
		readings = append(readings, f.Readings()...)
	}
	return readings
}
