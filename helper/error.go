package helper

import "fmt"

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Trace    string
	Original error
}

// NewError creates a new traced error. It returns nil if original is nil.
func NewError(trace string, original error) error {
	if original == nil {
		return nil
	}
	return &Error{
		Trace:    trace,
		Original: original,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Trace, e.Original)
}

// Unwrap returns the original error
func (e *Error) Unwrap() error {
	return e.Original
}
