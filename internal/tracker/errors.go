package tracker

import (
	"fmt"

	"github.com/netupi/netupi/internal/apperr"
)

var (
	ErrInvalidTransition = &apperr.Error{
		Message: "command is not valid in the current state",
	}

	ErrUnknownTask = &apperr.Error{
		Message: "unknown task %q",
	}

	errTaskWithoutID = &apperr.Error{
		Message: "task %q has no id",
	}
)

// TransitionError reports a command issued in a state that does not accept
// it.
type TransitionError struct {
	Command string
	State   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Command, e.State.Phase)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PersistenceError reports a store call that failed. The in-memory state is
// kept regardless.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("unable to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
