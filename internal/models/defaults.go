package models

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Reference parameters of the modelled hull: a 2.9 m, 140 kg unmanned
// submarine with a cruciform tail.
const (
	DefaultDragCoefficient         = 0.04
	DefaultLiftSlope               = math.Pi / 2
	DefaultSpinningDragCoefficient = 2.0
)

func DefaultGeometry() Geometry {
	return Geometry{Length: 2.9, Width: 0.6, Height: 0.7, Mass: 140}
}

// DefaultBuoyancyPosition sits above the center of mass so a rolled hull
// rights itself.
func DefaultBuoyancyPosition() mgl64.Vec3 { return mgl64.Vec3{0, 0.15, 0} }

func DefaultThrust() mgl64.Vec3 { return mgl64.Vec3{100, 0, 10} }

func DefaultPropellorTorque() mgl64.Vec3 { return mgl64.Vec3{20, 0, 0} }

// DefaultFinSet is used for both the horizontal and the vertical pair.
func DefaultFinSet() FinSet {
	return FinSet{
		Enabled: true,
		FinParams: FinParams{
			Area:            0.025,
			AspectRatio:     3,
			LiftSlope:       math.Pi,
			DragCoefficient: 0.03,
			Offset:          -0.725,
		},
	}
}
