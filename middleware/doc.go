// Package middleware provides reusable middleware for tidal servers.
//
// Every constructor is generic over the server state type and returns a
// handler.Middleware, so it can be registered globally with Server.With or on
// a single route with Route.With:
//
//	app := tidal.WithState(state)
//	app.With(
//		middleware.RequestID[*State](),
//		middleware.ClientIP[*State](),
//		middleware.Logging[*State](log),
//		middleware.Timeout[*State](10*time.Second),
//	)
//	app.At("/upload").With(middleware.BodyLimit[*State](8<<20)).Post(upload)
//
// Middleware listed first wraps the rest: RequestID above runs its pre phase
// before Logging, so the log record carries the request ID.
//
// Failures are returned as response.HTTPError values (413 from BodyLimit, 429
// from RateLimit, 503 from Timeout) and rendered by the server's error
// handler.
package middleware
