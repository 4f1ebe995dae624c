package integrators

import "github.com/san-kum/subsim/internal/dynamo"

// Midpoint is the second-order explicit midpoint rule: one trial half step,
// then a full step along the derivative found there.
type Midpoint struct {
	half dynamo.State
}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Order() int { return 2 }

func (m *Midpoint) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	if len(m.half) != len(x) {
		m.half = make(dynamo.State, len(x))
	}
	axpy(m.half, x, dyn.Derive(x, u, t), dt/2)
	return axpy(make(dynamo.State, len(x)), x, dyn.Derive(m.half, u, t+dt/2), dt)
}
