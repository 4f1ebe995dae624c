package controllers

// PID tracks a scalar target. The first update has no derivative term,
// and time running backwards restarts the controller.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

// Update returns the control output for measurement y at time t.
func (p *PID) Update(y, t float64) float64 {
	err := p.Target - y

	if !p.first && t < p.prevT {
		p.Reset()
	}
	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return u
	}
	return p.Kp * err
}

func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.prevT = 0
	p.first = true
}
