// Package errz defines the errors that can end a Befunge run.
package errz

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrIO indicates that reading input or writing output failed.
	ErrIO ErrorKind = iota
	// ErrLimit indicates that the configured step limit was reached.
	ErrLimit
	// ErrHalted indicates that execution was stopped from outside the
	// program, by context cancellation or an observer.
	ErrHalted
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrIO:
		return "io error"
	case ErrLimit:
		return "limit error"
	case ErrHalted:
		return "halted"
	default:
		return "error"
	}
}

// Location is the grid cell that was executing when an error occurred.
type Location struct {
	Row int
	Col int
}

// StructuredError carries the kind of failure, the cell being executed and
// the underlying cause.
type StructuredError struct {
	Message  string
	Kind     ErrorKind
	Location Location
	Cause    error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	msg := fmt.Sprintf("%s: %s (%d:%d)", e.Kind, e.Message, e.Location.Row, e.Location.Col)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// NewStructuredErrorf creates a new StructuredError with a formatted message.
func NewStructuredErrorf(kind ErrorKind, loc Location, format string, args ...any) *StructuredError {
	return &StructuredError{
		Message:  fmt.Sprintf(format, args...),
		Kind:     kind,
		Location: loc,
	}
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

// KindOf returns the kind of the first StructuredError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}
