package integrators

import "github.com/san-kum/subsim/internal/dynamo"

// Euler is the explicit first-order method, the single derivative per tick
// game physics engines use. Cheap, but it gains energy on an oscillating
// hull.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Order() int { return 1 }

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	return axpy(make(dynamo.State, len(x)), x, dyn.Derive(x, u, t), dt)
}

// axpy writes x + h·k into dst and returns it.
func axpy(dst, x, k dynamo.State, h float64) dynamo.State {
	for i := range dst {
		dst[i] = x[i] + h*k[i]
	}
	return dst
}
