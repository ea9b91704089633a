package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tidal"
	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/health"
	"github.com/dmitrymomot/tidal/core/response"
	"github.com/dmitrymomot/tidal/middleware"
	"github.com/dmitrymomot/tidal/pkg/ratelimiter"
)

type appDeps struct {
	log            *slog.Logger
	limiter        ratelimiter.RateLimiter
	checks         []func(context.Context) error
	requestTimeout time.Duration
	maxBodySize    int64
}

func newApp(state *App, deps appDeps) *tidal.Server[*App] {
	app := tidal.WithState(state,
		tidal.WithLogger[*App](deps.log),
		tidal.WithErrorHandler[*App](response.JSONErrorHandler[*App]),
	)

	// Global middleware runs for every request, including 404 and 405.
	app.With(
		middleware.RequestID[*App](),
		middleware.ClientIP[*App](),
		middleware.Logging[*App](deps.log),
		middleware.Timeout[*App](deps.requestTimeout),
	)

	app.At("/live").Get(health.Liveness[*App]())
	app.At("/ready").Get(health.Readiness[*App](deps.log, deps.checks...))

	api := app.At("/api").With(
		countHits(),
		middleware.RateLimit[*App](middleware.RateLimitConfig{Limiter: deps.limiter, SetHeaders: true}),
	)
	api.At("/users/:id").Get(endpoint(getUser))
	api.At("/files/*path").Get(endpoint(getFile))
	api.At("/notes").
		With(middleware.BodyLimit[*App](deps.maxBodySize)).
		Post(endpoint(createNote))
	api.At("/notes/:id").Get(endpoint(getNote))
	api.At("/kv/:key").
		Get(endpoint(getKey)).
		Put(endpoint(putKey))
	api.At("/stats").Get(handler.FromHTTP[*App](stats(state)))

	return app
}
