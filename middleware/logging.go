package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/logger"
	"github.com/dmitrymomot/tidal/core/response"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: info)
	LogLevel slog.Level

	// SlowRequestThreshold logs slower requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging logs one record per request with method, path, status and latency.
func Logging[S any](log *slog.Logger) handler.Middleware[S] {
	return LoggingWithConfig[S](LoggingConfig{Logger: log})
}

// LoggingWithConfig is Logging with custom configuration.
// Client errors are logged at warning level and server errors at error level.
func LoggingWithConfig[S any](cfg LoggingConfig) handler.Middleware[S] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return handler.MiddlewareFunc[S](func(req *handler.Request[S], next handler.Next[S]) (*handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req.Request()) {
			return next(req)
		}

		start := time.Now()
		resp, err := next(req)
		latency := time.Since(start)

		status := http.StatusOK
		size := 0
		switch {
		case err != nil:
			status = response.ToHTTPError(err).StatusCode()
		case resp != nil:
			status = resp.Status()
			size = len(resp.Body())
		}

		requestID, _ := GetRequestID(req)
		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.RequestID(requestID),
			logger.Method(req.Method()),
			logger.Path(req.Path()),
			logger.StatusCode(status),
			logger.Latency(latency),
			logger.BytesOut(size),
			logger.ClientIP(clientIPOf(req)),
			logger.UserAgent(req.Header("User-Agent")),
		}
		if err != nil {
			attrs = append(attrs, logger.Error(err))
		}

		level := cfg.LogLevel
		msg := "request completed"
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
			msg = "request failed"
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
			msg = "request rejected"
		case latency > cfg.SlowRequestThreshold:
			level = slog.LevelWarn
			msg = "slow request"
		}

		cfg.Logger.LogAttrs(context.WithoutCancel(req.Context()), level, msg, attrs...)

		return resp, err
	})
}
