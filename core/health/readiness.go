package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/logger"
	"github.com/dmitrymomot/tidal/core/response"
)

// DefaultCheckTimeout bounds each readiness probe.
const DefaultCheckTimeout = 5 * time.Second

// Readiness runs every check and answers "READY" when all pass. The first
// failure is logged and answered with 503 Service Unavailable.
//
//	app.At("/health/ready").Get(health.Readiness[*App](log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	))
func Readiness[S any](log *slog.Logger, checks ...func(context.Context) error) handler.Endpoint[S] {
	if log == nil {
		log = logger.Discard()
	}

	return handler.EndpointFunc[S](func(req *handler.Request[S]) (*handler.Response, error) {
		ctx, cancel := context.WithTimeout(req.Context(), DefaultCheckTimeout)
		defer cancel()

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return nil, response.ErrServiceUnavailable
			}
		}

		return response.String("READY"), nil
	})
}
