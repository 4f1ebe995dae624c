package integrators

import "github.com/san-kum/subsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method. The control is held
// constant across all four stages, so forces computed after the previous
// tick act on the whole step. Stage buffers are reused between steps; a
// single RK4 must not be shared between bodies stepping concurrently.
type RK4 struct {
	k       [4]dynamo.State
	scratch dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Order() int { return 4 }

func (r *RK4) resize(n int) {
	if len(r.scratch) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.scratch = make(dynamo.State, n)
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	r.resize(n)

	// stage i is evaluated at x + offsets[i]·dt·k[i-1]
	offsets := [4]float64{0, 0.5, 0.5, 1}
	copy(r.k[0], dyn.Derive(x, u, t))
	for i := 1; i < 4; i++ {
		h := offsets[i] * dt
		axpy(r.scratch, x, r.k[i-1], h)
		copy(r.k[i], dyn.Derive(r.scratch, u, t+h))
	}

	out := make(dynamo.State, n)
	dt6 := dt / 6
	for i := range out {
		out[i] = x[i] + dt6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return out
}
