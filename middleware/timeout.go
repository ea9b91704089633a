package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/response"
)

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// Timeout bounds the rest of the chain (default: 30s)
	Timeout time.Duration

	// Error is returned when the deadline passes (default: 503 Service Unavailable)
	Error error
}

type timeoutResult struct {
	resp     *handler.Response
	err      error
	panicked any
}

// Timeout bounds the rest of the chain to d. The inner chain sees a context
// with that deadline and should stop when it is done; the middleware answers
// with 503 as soon as the deadline passes without waiting for it.
func Timeout[S any](d time.Duration) handler.Middleware[S] {
	return TimeoutWithConfig[S](TimeoutConfig{Timeout: d})
}

// TimeoutWithConfig is Timeout with custom configuration.
func TimeoutWithConfig[S any](cfg TimeoutConfig) handler.Middleware[S] {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Error == nil {
		cfg.Error = response.ErrServiceUnavailable.WithMessage(fmt.Sprintf("Request did not complete within %s", cfg.Timeout))
	}

	return handler.MiddlewareFunc[S](func(req *handler.Request[S], next handler.Next[S]) (*handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req.Request()) {
			return next(req)
		}

		ctx, cancel := context.WithTimeout(req.Context(), cfg.Timeout)
		defer cancel()

		done := make(chan timeoutResult, 1)
		go func() {
			var res timeoutResult
			defer func() {
				if p := recover(); p != nil {
					res = timeoutResult{panicked: p}
				}
				done <- res
			}()
			res.resp, res.err = next(req.WithContext(ctx))
		}()

		select {
		case res := <-done:
			if res.panicked != nil {
				// re-raised on the request goroutine so the server recovers it
				panic(res.panicked)
			}
			if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() != nil {
				return nil, cfg.Error
			}
			return res.resp, res.err
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, cfg.Error
			}
			// client went away
			return nil, response.ErrRequestTimeout.WithError(ctx.Err())
		}
	})
}
