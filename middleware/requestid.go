package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tidal/core/handler"
)

// RequestIDKey is the context key the request ID is stored under. It can be
// handed to logger.WithContextValue to tag every record with the ID.
type RequestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting reuses an ID sent by the client in HeaderName
	UseExisting bool
}

// RequestID assigns a UUID to every request, stores it in the request context
// and echoes it in the X-Request-ID response header.
func RequestID[S any]() handler.Middleware[S] {
	return RequestIDWithConfig[S](RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with custom configuration.
func RequestIDWithConfig[S any](cfg RequestIDConfig) handler.Middleware[S] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.New().String() }
	}

	return handler.MiddlewareFunc[S](func(req *handler.Request[S], next handler.Next[S]) (*handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req.Request()) {
			return next(req)
		}

		var id string
		if cfg.UseExisting {
			id = req.Header(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}

		req.SetValue(RequestIDKey{}, id)

		resp, err := next(req)
		if err != nil || resp == nil {
			return resp, err
		}
		resp.SetHeader(cfg.HeaderName, id)
		return resp, nil
	})
}

// GetRequestID returns the ID assigned by RequestID.
func GetRequestID[S any](req *handler.Request[S]) (string, bool) {
	return RequestIDFromContext(req.Context())
}

// RequestIDFromContext returns the ID assigned by RequestID from a context
// derived from the request.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey{}).(string)
	return id, ok
}
