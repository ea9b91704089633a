package middleware

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/response"
)

// BodyLimitConfig configures the body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// MaxSize is the maximum allowed size in bytes (default: 4MB)
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type,
	// e.g. {"application/json": 1 << 20, "multipart/form-data": 10 << 20}
	ContentTypeLimit map[string]int64
}

// BodyLimit rejects requests whose body exceeds maxSize bytes with 413.
// A declared Content-Length over the limit is rejected before the endpoint
// runs; otherwise reading past the limit fails with the same error.
func BodyLimit[S any](maxSize int64) handler.Middleware[S] {
	return BodyLimitWithConfig[S](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig is BodyLimit with custom configuration.
func BodyLimitWithConfig[S any](cfg BodyLimitConfig) handler.Middleware[S] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 << 20
	}

	return handler.MiddlewareFunc[S](func(req *handler.Request[S], next handler.Next[S]) (*handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req.Request()) {
			return next(req)
		}

		limit := cfg.MaxSize
		if cfg.ContentTypeLimit != nil {
			if mediaType, _, err := mime.ParseMediaType(req.Header("Content-Type")); err == nil {
				if l, ok := cfg.ContentTypeLimit[mediaType]; ok {
					limit = l
				}
			}
		}

		r := req.Request()
		if r.ContentLength > limit {
			return nil, tooLarge(limit)
		}
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = &limitedBody{ReadCloser: http.MaxBytesReader(nil, r.Body, limit), limit: limit}
		}

		return next(req)
	})
}

// limitedBody turns the MaxBytesReader failure into a 413 HTTPError so an
// endpoint that returns the read error unchanged gets the right status.
type limitedBody struct {
	io.ReadCloser
	limit int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return n, tooLarge(b.limit)
	}
	return n, err
}

func tooLarge(limit int64) error {
	return response.ErrRequestEntityTooLarge.
		WithMessage(fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", limit)).
		WithDetails(map[string]any{"limit": limit})
}
