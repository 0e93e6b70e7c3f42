// Package apperr defines the error type shared by netupi packages
package apperr

import "fmt"

// Error is an application error with a user-facing message and an optional
// underlying cause.
type Error struct {
	Err      error
	Message  string
	template string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches formatted or wrapped copies against their package-level value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Message == e.Message ||
		(e.template != "" && t.Message == e.template)
}

// Fmt returns a copy of the error with its message formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message:  fmt.Sprintf(e.Message, args...),
		Err:      e.Err,
		template: e.Message,
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message:  e.Message,
		Err:      err,
		template: e.template,
	}
}
