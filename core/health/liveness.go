package health

import (
	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/response"
)

// Liveness answers "ALIVE" with 200 OK while the process serves requests.
// It checks no dependencies.
//
//	app.At("/health/live").Get(health.Liveness[*App]())
func Liveness[S any]() handler.Endpoint[S] {
	return handler.EndpointFunc[S](func(*handler.Request[S]) (*handler.Response, error) {
		return response.String("ALIVE"), nil
	})
}

// NoContent answers 204 without a body. Meant for high-frequency pings.
func NoContent[S any]() handler.Endpoint[S] {
	return handler.EndpointFunc[S](func(*handler.Request[S]) (*handler.Response, error) {
		return response.NoContent(), nil
	})
}
