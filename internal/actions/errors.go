package actions

import (
	"fmt"

	"github.com/veildrift/go-incursion/internal/world"
)

// ValidationError reports a candidate action that fails re-validation
// against current world truth. No mutation happens and no tick cost is
// charged.
type ValidationError struct {
	Type   Type
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("action %s invalid: %s", e.Type, e.Reason)
}

func newValidationError(t Type, format string, args ...any) *ValidationError {
	return &ValidationError{Type: t, Reason: fmt.Sprintf(format, args...)}
}

// UnknownActionTypeError reports a candidate whose type is outside the
// closed action set.
type UnknownActionTypeError struct {
	Type Type
}

func (e *UnknownActionTypeError) Error() string {
	return fmt.Sprintf("unknown action type %q", string(e.Type))
}

// ExecutionError reports a structurally valid action an executor could not
// complete, e.g. a target that vanished mid-resolution. Like validation
// failures it charges no tick cost.
type ExecutionError struct {
	Type   Type
	Reason string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %s: %s", e.Type, e.Reason)
}

func newExecutionError(t Type, format string, args ...any) *ExecutionError {
	return &ExecutionError{Type: t, Reason: fmt.Sprintf(format, args...)}
}

// ConsistencyError signals that the scheduler rejected the cost of an
// action that passed validation and execution: the world store and the
// scheduler have desynchronized. Fatal to the turn, surfaced rather than
// guessed around.
type ConsistencyError struct {
	Char world.EntityID
	Err  error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("world/scheduler desynchronized for character %d: %v", e.Char, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}
