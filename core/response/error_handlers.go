package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/tidal/core/handler"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError.
// Errors that carry no status become a generic 500; their text is never
// echoed to the client.
// A status outside 400-599 is not an error status and is treated the same way.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && isErrorStatus(httpErr.Status) {
		return httpErr
	}

	var sc statusCode
	if errors.As(err, &sc) && isErrorStatus(sc.StatusCode()) {
		return FromStatus(sc.StatusCode()).WithMessage(err.Error())
	}

	return ErrInternalServerError
}

// IsDeliberate reports whether err carries an explicit 4xx or 5xx status.
func IsDeliberate(err error) bool {
	var sc statusCode
	return errors.As(err, &sc) && isErrorStatus(sc.StatusCode())
}

func isErrorStatus(code int) bool {
	return code >= http.StatusBadRequest && code <= 599
}

// TextErrorHandler renders errors as text/plain.
func TextErrorHandler[S any](_ *handler.Request[S], err error) *handler.Response {
	httpErr := ToHTTPError(err)
	return Text(httpErr.Status, httpErr.Message)
}

// JSONErrorHandler renders errors as JSON objects with code, message and details.
func JSONErrorHandler[S any](_ *handler.Request[S], err error) *handler.Response {
	httpErr := ToHTTPError(err)
	resp, jerr := JSON(httpErr.Status, httpErr)
	if jerr != nil {
		return Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	return resp
}
