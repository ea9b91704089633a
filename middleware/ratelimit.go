package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/response"
	"github.com/dmitrymomot/tidal/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Limiter is the rate limiting implementation to use
	Limiter ratelimiter.RateLimiter
	// KeyExtractor returns the bucket key for a request (default: client IP)
	KeyExtractor func(r *http.Request) string
	// SetHeaders adds X-RateLimit-* headers to successful responses
	SetHeaders bool
}

// RateLimit rejects requests over the limiter's budget with 429. Keys default
// to the client IP as resolved by ClientIP.
func RateLimit[S any](cfg RateLimitConfig) handler.Middleware[S] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}

	return handler.MiddlewareFunc[S](func(req *handler.Request[S], next handler.Next[S]) (*handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req.Request()) {
			return next(req)
		}

		var key string
		if cfg.KeyExtractor != nil {
			key = cfg.KeyExtractor(req.Request())
		} else {
			key = clientIPOf(req)
		}

		result, err := cfg.Limiter.Allow(req.Context(), key)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		if !result.Allowed() {
			retry := int(math.Ceil(result.RetryAfter().Seconds()))
			return nil, response.ErrTooManyRequests.WithDetails(map[string]any{
				"retry_after": retry,
				"limit":       result.Limit,
			})
		}

		resp, err := next(req)
		if err != nil || resp == nil || !cfg.SetHeaders {
			return resp, err
		}

		resp.SetHeader("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		resp.SetHeader("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		resp.SetHeader("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		return resp, nil
	})
}
