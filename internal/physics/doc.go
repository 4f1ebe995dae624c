// Package physics converts the instantaneous kinematics of a rigid body
// moving through a fluid into forces and torques.
//
// Every model follows the same lifecycle: bind it to a [dynamo.Body], then
// call Apply once per tick with the current [Fluid]. Apply reads the body's
// kinematics, computes a world-frame value and pushes it into the body's
// accumulators. The last computed value stays readable through Value (and
// WorldPosition for forces) so a renderer can draw it after the tick.
//
// Force models: [Weight], [Buoyancy], [Thrust], [Drag], [Lift].
// Torque models: [Propellor], [SpinningDrag], [FinDamping].
//
// # Frames
//
// The world is Y-up. A body's nose is its local +X axis. Pitch is rotation
// in the x-y plane, yaw in the x-z plane and roll about the nose.
package physics
