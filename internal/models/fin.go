package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/physics"
)

// ErrFinOutsideHull is returned when a fin's longitudinal offset lies
// beyond either end of the hull.
var ErrFinOutsideHull = errors.New("models: fin mounted outside the hull")

// Orientation is the side of the hull a fin is mounted on, looking from
// the stern.
type Orientation int

const (
	North Orientation = iota
	East
	South
	West
)

func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Plane is the plane of motion a fin at this orientation acts in.
func (o Orientation) Plane() physics.Plane {
	if o == East || o == West {
		return physics.Vertical
	}
	return physics.Horizontal
}

// Hull is the geometry a fin needs to find its mounting point.
type Hull interface {
	Length() float64
	Width() float64
}

// FinParams describe one fin.
type FinParams struct {
	Area            float64 `yaml:"area" json:"area"`
	AspectRatio     float64 `yaml:"aspect_ratio" json:"aspect_ratio"`
	LiftSlope       float64 `yaml:"lift_slope" json:"lift_slope"`
	DragCoefficient float64 `yaml:"drag_coefficient" json:"drag_coefficient"`
	Offset          float64 `yaml:"offset" json:"offset"`
}

// Fin is a control surface that owns its own drag, lift and roll damping.
// Its plane is fixed by the orientation it was built with.
type Fin struct {
	orientation Orientation
	plane       physics.Plane
	params      FinParams
	position    mgl64.Vec3
	radius      float64

	drag    *physics.Drag
	lift    *physics.Lift
	damping *physics.FinDamping
}

func NewFin(orientation Orientation, params FinParams) *Fin {
	name := orientation.String()
	f := &Fin{
		orientation: orientation,
		plane:       orientation.Plane(),
		drag:        physics.NewDrag(name + " fin drag"),
		lift:        physics.NewLift(name + " fin lift"),
		damping:     physics.NewFinDamping(name + " fin damping"),
	}
	f.SetArea(params.Area)
	f.SetAspectRatio(params.AspectRatio)
	f.SetLiftSlope(params.LiftSlope)
	f.SetDragCoefficient(params.DragCoefficient)
	f.params.Offset = params.Offset
	return f
}

func (f *Fin) Orientation() Orientation { return f.orientation }
func (f *Fin) Plane() physics.Plane     { return f.plane }
func (f *Fin) Params() FinParams        { return f.params }

// Position is the body-local point where lift and drag act.
func (f *Fin) Position() mgl64.Vec3 { return f.position }

// Radius is the fin root's distance from the roll axis.
func (f *Fin) Radius() float64 { return f.radius }

func (f *Fin) Drag() *physics.Drag          { return f.drag }
func (f *Fin) Lift() *physics.Lift          { return f.lift }
func (f *Fin) Damping() *physics.FinDamping { return f.damping }

// SetArea updates the area of every model the fin owns. Lift only sees the
// area in the fin's own plane.
func (f *Fin) SetArea(area float64) {
	f.params.Area = area
	f.drag.SetArea(area)
	f.damping.SetArea(area)
	if f.plane == physics.Horizontal {
		f.lift.SetPitchArea(area)
		f.lift.SetYawArea(0)
	} else {
		f.lift.SetPitchArea(0)
		f.lift.SetYawArea(area)
	}
}

func (f *Fin) SetAspectRatio(r float64) {
	f.params.AspectRatio = r
	f.damping.SetAspectRatio(r)
}

func (f *Fin) SetLiftSlope(s float64) {
	f.params.LiftSlope = s
	f.lift.SetSlope(s)
}

func (f *Fin) SetDragCoefficient(c float64) {
	f.params.DragCoefficient = c
	f.drag.SetCoefficient(c)
}

// CalculatePosition mounts the fin at a longitudinal offset on an
// elliptical hull cross-section.
func (f *Fin) CalculatePosition(hull Hull, offset float64) error {
	halfLength := hull.Length() / 2
	if halfLength <= 0 || hull.Width() <= 0 {
		return fmt.Errorf("fin %s: hull %gx%g: %w", f.orientation, hull.Length(), hull.Width(), dynamo.ErrParameterBounds)
	}
	if math.Abs(offset) > halfLength {
		return fmt.Errorf("fin %s at %g on hull of length %g: %w", f.orientation, offset, hull.Length(), ErrFinOutsideHull)
	}

	p := math.Abs(offset) / halfLength
	radius := math.Sqrt(1-p*p) * hull.Width() / 2

	var pos mgl64.Vec3
	switch f.orientation {
	case North:
		pos = mgl64.Vec3{offset, radius, 0}
	case South:
		pos = mgl64.Vec3{offset, -radius, 0}
	case East:
		pos = mgl64.Vec3{offset, 0, radius}
	case West:
		pos = mgl64.Vec3{offset, 0, -radius}
	}

	f.params.Offset = offset
	f.radius = radius
	f.position = pos
	f.drag.SetPosition(pos)
	f.lift.SetPosition(pos)
	f.damping.SetRadius(radius)
	return nil
}

func (f *Fin) Bind(body dynamo.Body) {
	f.drag.Bind(body)
	f.lift.Bind(body)
	f.damping.Bind(body)
}

// ApplyForces applies lift, then drag, then roll damping.
func (f *Fin) ApplyForces(fluid physics.Fluid) error {
	if err := f.lift.Apply(fluid); err != nil {
		return err
	}
	if err := f.drag.Apply(fluid); err != nil {
		return err
	}
	return f.damping.Apply(fluid)
}

func (f *Fin) Readings() []physics.Reading {
	return []physics.Reading{
		physics.ReadForce(f.lift),
		physics.ReadForce(f.drag),
		physics.ReadTorque(f.damping),
	}
}
