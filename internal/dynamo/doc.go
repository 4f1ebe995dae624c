// Package dynamo provides the core primitives shared by the simulation
// packages.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: flat vector representing integrated system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Body]: handle to a rigid body that forces are applied to
//   - [Transform]: world placement of a body (origin and orientation)
//
// # Example
//
//	body := rigid.NewCapsuleX(140, 0.65, 2.9)
//	world := rigid.NewWorld(integrators.NewRK4())
//	_ = world.Add(body)
//	body.ApplyForce(mgl64.Vec3{0, -1373.4, 0}, body.Transform().Origin)
//	world.Step(1.0 / 60)
//
// # Thread Safety
//
// Bodies and worlds are NOT thread-safe. Independent simulations may run
// on separate goroutines as long as they share no body.
package dynamo
