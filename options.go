package tidal

import (
	"log/slog"

	"github.com/dmitrymomot/tidal/core/handler"
)

// Option configures a Server during creation.
type Option[S any] func(*Server[S])

// WithErrorHandler sets the function that turns failed requests into responses.
func WithErrorHandler[S any](h handler.ErrorHandler[S]) Option[S] {
	return func(s *Server[S]) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(s *Server[S]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMiddleware adds global middleware at construction time.
func WithMiddleware[S any](middlewares ...handler.Middleware[S]) Option[S] {
	return func(s *Server[S]) {
		s.middlewares = append(s.middlewares, middlewares...)
	}
}
