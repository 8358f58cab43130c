package defers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrActionPanic is wrapped by the error of an action that panicked.
var ErrActionPanic = errors.New("deferred action panicked")

// ActionError records a deferred action that failed while its scope drained.
type ActionError struct {
	// Index is the action's registration position; the first action is 0.
	Index int
	Err   error

	// Panicked reports whether the action panicked. Value is what it
	// panicked with.
	Panicked bool
	Value    any
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("deferred action %d failed: %s", e.Index, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Error is returned when at least one deferred action failed.
// Actions are listed in the order they ran.
type Error struct {
	Primary error
	Actions []*ActionError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Actions)+1)
	if e.Primary != nil {
		msgs = append(msgs, e.Primary.Error())
	}
	for _, a := range e.Actions {
		msgs = append(msgs, a.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap returns the primary error, if any, followed by each action failure.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, len(e.Actions)+1)
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	for _, a := range e.Actions {
		errs = append(errs, a)
	}
	return errs
}
