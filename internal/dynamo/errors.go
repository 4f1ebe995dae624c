package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnboundBody indicates a force or torque was applied before being
	// bound to a rigid body.
	ErrUnboundBody = errors.New("dynamo: force applied with no bound body")

	// ErrAlreadyAdded indicates a body was added to a world twice.
	ErrAlreadyAdded = errors.New("dynamo: body already added to a world")

	// ErrNotSetup indicates a simulation was stepped or reset before setup.
	ErrNotSetup = errors.New("dynamo: simulation not set up")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
