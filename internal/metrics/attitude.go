package metrics

import (
	"math"

	"github.com/san-kum/subsim/internal/sim"
)

// Attitude selects one attitude angle from a sample.
type Attitude int

const (
	Roll Attitude = iota
	Pitch
	Yaw
)

func (a Attitude) String() string {
	switch a {
	case Roll:
		return "roll"
	case Pitch:
		return "pitch"
	case Yaw:
		return "yaw"
	}
	return "unknown"
}

func (a Attitude) angle(s sim.Sample) float64 {
	switch a {
	case Pitch:
		return s.Pitch
	case Yaw:
		return s.Yaw
	}
	return s.Roll
}

// Excursion is the largest absolute attitude angle seen, in radians.
type Excursion struct {
	name     string
	attitude Attitude
	max      float64
}

func NewExcursion(a Attitude) *Excursion {
	return &Excursion{
		name:     "max_" + a.String(),
		attitude: a,
	}
}

func (e *Excursion) Name() string { return e.name }

func (e *Excursion) Observe(s sim.Sample) {
	angle := math.Abs(e.attitude.angle(s))
	if !math.IsNaN(angle) {
		e.max = math.Max(e.max, angle)
	}
}

func (e *Excursion) Value() float64 { return e.max }

func (e *Excursion) Reset() { e.max = 0 }

// Settling is the last time the attitude angle was outside the band.
type Settling struct {
	name     string
	attitude Attitude
	band     float64
	last     float64
}

func NewSettling(a Attitude, band float64) *Settling {
	return &Settling{
		name:     a.String() + "_settling_time",
		attitude: a,
		band:     band,
	}
}

func (st *Settling) Name() string { return st.name }

func (st *Settling) Observe(s sim.Sample) {
	if math.Abs(st.attitude.angle(s)) > st.band {
		st.last = s.Time
	}
}

func (st *Settling) Value() float64 { return st.last }

func (st *Settling) Reset() { st.last = 0 }
