package router

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Match errors
	ErrNotFound         error = &statusError{status: http.StatusNotFound, msg: "not found"}
	ErrMethodNotAllowed error = &statusError{status: http.StatusMethodNotAllowed, msg: "method not allowed"}

	// Registration errors
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrWildcardPosition = errors.New("wildcard position must be last")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
	ErrParamConflict    = errors.New("conflicting parameter names at the same position")
	ErrDuplicateRoute   = errors.New("route already registered for method")
)

// statusError is a sentinel error that carries its HTTP status.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string { return e.msg }

// StatusCode returns the HTTP status associated with the error.
func (e *statusError) StatusCode() int { return e.status }

// RegistrationError reports a route that could not be added to the router.
// It is a startup failure: a router that produced one must not serve.
type RegistrationError struct {
	Method  string
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s %s: %v", e.Method, e.Pattern, e.Err)
}

// Unwrap allows errors.Is/As to reach the underlying cause.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}
