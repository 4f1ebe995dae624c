package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/physics"
)

// DefaultDt is one frame at 60 Hz.
const DefaultDt = 1.0 / 60

// Sample is everything observable about the submarine after one tick.
type Sample struct {
	Time            float64           `json:"time"`
	Position        mgl64.Vec3        `json:"position"`
	Velocity        mgl64.Vec3        `json:"velocity"`
	AngularVelocity mgl64.Vec3        `json:"angular_velocity"`
	Roll            float64           `json:"roll"`
	Pitch           float64           `json:"pitch"`
	Yaw             float64           `json:"yaw"`
	PitchAoA        float64           `json:"pitch_aoa"`
	YawAoA          float64           `json:"yaw_aoa"`
	RollAoA         float64           `json:"roll_aoa"`
	Readings        []physics.Reading `json:"readings"`
}

// Reading returns the named reading, if present.
func (s Sample) Reading(name string) (physics.Reading, bool) {
	for _, r := range s.Readings {
		if r.Name == name {
			return r, true
		}
	}
	return physics.Reading{}, false
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Sample)

func (f ObserverFunc) OnStep(s Sample) { f(s) }

// Initial is the submarine's state when a run starts or resets.
type Initial struct {
	Position        mgl64.Vec3 `yaml:"position" json:"position"`
	Velocity        mgl64.Vec3 `yaml:"velocity" json:"velocity"`
	AngularVelocity mgl64.Vec3 `yaml:"angular_velocity" json:"angular_velocity"`
	Roll            float64    `yaml:"roll" json:"roll"`
	Pitch           float64    `yaml:"pitch" json:"pitch"`
	Yaw             float64    `yaml:"yaw" json:"yaw"`
}

// Orientation composes yaw, then pitch, then roll into a quaternion whose
// attitude reads back as the same angles when only one is nonzero.
func (i Initial) Orientation() mgl64.Quat {
	yaw := mgl64.QuatRotate(-i.Yaw, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(i.Pitch, mgl64.Vec3{0, 0, 1})
	roll := mgl64.QuatRotate(i.Roll, mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	Dt         float64
	StepsTaken int
}
