// Package tidal routes HTTP requests to endpoints through an ordered chain of
// middleware, sharing one application state value across every request.
//
// A server is built in two phases. During registration routes and middleware
// are added; the first call to Handler, Listen or ServeHTTP freezes the
// server, after which the route table and every middleware chain are
// read-only and requests are served concurrently.
//
//	type App struct {
//		DB   *pgxpool.Pool
//		Hits atomic.Int64
//	}
//
//	app := tidal.WithState(&App{DB: pool}, tidal.WithLogger[*App](log))
//	app.With(middleware.RequestID[*App](), middleware.Logging[*App](log))
//
//	users := app.At("/users")
//	users.Get(listUsers).Post(createUser)
//	users.At("/:id").With(requireAuth).Get(showUser).Delete(deleteUser)
//	app.At("/files/*path").Get(serveFile)
//
//	if err := app.Listen(ctx, ":8080"); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # State
//
// The state value is handed to every request through Request.State. Use a
// pointer type for S: a struct value would be copied into each request
// instead of shared. The server does not synchronize access to it.
//
// # Routing
//
// Patterns support literal segments, named parameters (":id") and a trailing
// wildcard ("*path"); see package core/router for the matching rules. Routes
// created with Route.At inherit the middleware of the route they were
// created from.
//
// # Middleware order
//
// The chain for a request is the global middleware in registration order,
// then the route middleware from the outermost route inward, then the
// endpoint. The first middleware runs its pre phase first and its post phase
// last. Global middleware also wraps the 404 and 405 responses.
//
// # Errors
//
// Endpoints and middleware return errors as values. An error that carries a
// status (response.HTTPError, or anything with StatusCode() int) is rendered
// with that status and message. Any other error, a panic, or an endpoint
// that returns neither response nor error is logged and answered with a
// generic 500. Rendering is done by the ErrorHandler, which defaults to
// response.TextErrorHandler.
//
// Registration problems such as conflicting parameter names or duplicate
// routes are collected and returned by Err, Handler and Listen. A server with
// registration errors never serves.
package tidal
