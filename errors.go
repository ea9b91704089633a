package tidal

import (
	"errors"
	"fmt"
)

var (
	ErrNilResponse   = errors.New("endpoint returned neither response nor error")
	ErrNilEndpoint   = errors.New("nil endpoint")
	ErrServerFrozen  = errors.New("server is serving, routes and middleware can no longer change")
	ErrInvalidStatus = errors.New("response status is not a valid HTTP status code")
)

// PanicError is the error a recovered panic is converted to. Custom error
// handlers can detect it with errors.As.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap exposes the panic value when it is an error.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
