package waves

import "errors"

// Errors returned by the simulation. Callers match them with errors.Is; the
// returned values wrap these with the offending arguments.
var (
	// ErrInvalidArgument reports grid parameters that cannot support the stencil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionViolation reports a disturbance too close to the boundary.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrOutOfRange reports a vertex index outside [0, VertexCount).
	ErrOutOfRange = errors.New("index out of range")

	// ErrExecutorFailure reports a parallel dispatch that did not complete.
	ErrExecutorFailure = errors.New("executor failure")

	// ErrNotInitialized reports use of a simulation before Init.
	ErrNotInitialized = errors.New("simulation not initialized")
)
