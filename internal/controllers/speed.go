package controllers

import (
	"math"

	"github.com/san-kum/subsim/internal/models"
	"github.com/san-kum/subsim/internal/sim"
)

// SpeedHold is an autopilot that sets the forward thrust after each tick
// to hold a target speed through the water. Thrust is clamped to [0, MaxThrust].
type SpeedHold struct {
	pid       *PID
	sub       *models.Submarine
	maxThrust float64
}

func NewSpeedHold(sub *models.Submarine, target, kp, ki, kd, maxThrust float64) *SpeedHold {
	return &SpeedHold{
		pid:       NewPID(kp, ki, kd, target),
		sub:       sub,
		maxThrust: maxThrust,
	}
}

// OnStep implements sim.Observer.
func (s *SpeedHold) OnStep(sample sim.Sample) {
	u := s.pid.Update(sample.Velocity.Len(), sample.Time)
	u = math.Max(0, math.Min(s.maxThrust, u))

	thrust := s.sub.Thrust()
	thrust[0] = u
	s.sub.SetThrust(thrust)
}

func (s *SpeedHold) Target() float64 { return s.pid.Target }
