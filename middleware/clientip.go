package middleware

import (
	"net/http"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/response"
	"github.com/dmitrymomot/tidal/pkg/clientip"
)

type clientIPContextKey struct{}

// ClientIPConfig configures the client IP middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Validate rejects an address with 403 when it returns an error
	Validate func(ip string) error
}

// ClientIP resolves the client address once per request and stores it for
// GetClientIP, Logging and RateLimit.
func ClientIP[S any]() handler.Middleware[S] {
	return ClientIPWithConfig[S](ClientIPConfig{})
}

// ClientIPWithConfig is ClientIP with custom configuration.
func ClientIPWithConfig[S any](cfg ClientIPConfig) handler.Middleware[S] {
	return handler.MiddlewareFunc[S](func(req *handler.Request[S], next handler.Next[S]) (*handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req.Request()) {
			return next(req)
		}

		ip := clientip.GetIP(req.Request())
		if cfg.Validate != nil {
			if err := cfg.Validate(ip); err != nil {
				return nil, response.ErrForbidden.WithError(err)
			}
		}

		req.SetValue(clientIPContextKey{}, ip)
		return next(req)
	})
}

// GetClientIP returns the address stored by ClientIP.
func GetClientIP[S any](req *handler.Request[S]) (string, bool) {
	ip, ok := req.Value(clientIPContextKey{}).(string)
	return ip, ok
}

// clientIPOf prefers the stored address and resolves it otherwise.
func clientIPOf[S any](req *handler.Request[S]) string {
	if ip, ok := GetClientIP(req); ok {
		return ip
	}
	return clientip.GetIP(req.Request())
}
