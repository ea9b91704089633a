// Package health provides endpoints for liveness and readiness probes.
//
//	app.At("/health/live").Get(health.Liveness[*App]())
//	app.At("/health/ready").Get(health.Readiness[*App](log, pg.Healthcheck(pool)))
//	app.At("/ping").Get(health.NoContent[*App]())
//
// Readiness checks have the signature func(context.Context) error and get a
// context bounded by DefaultCheckTimeout.
package health
