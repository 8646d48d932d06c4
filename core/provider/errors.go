package provider

import (
	"errors"
	"fmt"
)

// ErrProvider is wrapped by every error a provider returns.
var ErrProvider = errors.New("provider error")

// Error is a provider failure: connecting, querying or decoding.
type Error struct {
	// Op is the failing operation, e.g. "connect" or "query".
	Op string
	// Kind is the backend that failed.
	Kind Kind
	// Err is the underlying cause.
	Err error
}

// NewError wraps err as a provider failure for the given operation.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every *Error match ErrProvider.
func (e *Error) Is(target error) bool {
	return target == ErrProvider
}
