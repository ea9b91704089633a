package tidal

import (
	"net/http"
	"slices"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/router"
)

// Route registers endpoints and route-scoped middleware for one pattern.
type Route[S any] struct {
	server      *Server[S]
	parent      *Route[S]
	pattern     string
	middlewares []handler.Middleware[S]
}

// Pattern returns the full pattern this route registers under.
func (r *Route[S]) Pattern() string {
	return r.pattern
}

// At returns a nested route whose pattern is this route's pattern followed by
// pattern. The nested route inherits this route's middleware.
func (r *Route[S]) At(pattern string) *Route[S] {
	return &Route[S]{
		server:  r.server,
		parent:  r,
		pattern: router.Join(r.pattern, pattern),
	}
}

// With appends middleware that applies to every method registered on this
// route and on routes nested under it.
func (r *Route[S]) With(middlewares ...handler.Middleware[S]) *Route[S] {
	if r.server.frozen {
		r.server.errs = append(r.server.errs, &router.RegistrationError{Method: "USE", Pattern: r.pattern, Err: ErrServerFrozen})
		return r
	}
	r.middlewares = append(r.middlewares, middlewares...)
	return r
}

// Method registers ep for an arbitrary HTTP method.
func (r *Route[S]) Method(method string, ep handler.Endpoint[S]) *Route[S] {
	r.server.register(r, method, ep)
	return r
}

// All registers ep for every method that has no dedicated endpoint on this route.
func (r *Route[S]) All(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(router.MethodAny, ep)
}

// Get registers a handler for GET requests. HEAD requests are served by it
// unless a HEAD endpoint is registered.
func (r *Route[S]) Get(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodGet, ep)
}

// Head registers a handler for HEAD requests.
func (r *Route[S]) Head(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodHead, ep)
}

// Post registers a handler for POST requests.
func (r *Route[S]) Post(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodPost, ep)
}

// Put registers a handler for PUT requests.
func (r *Route[S]) Put(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodPut, ep)
}

// Delete registers a handler for DELETE requests.
func (r *Route[S]) Delete(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodDelete, ep)
}

// Patch registers a handler for PATCH requests.
func (r *Route[S]) Patch(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodPatch, ep)
}

// Options registers a handler for OPTIONS requests.
func (r *Route[S]) Options(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodOptions, ep)
}

// Connect registers a handler for CONNECT requests.
func (r *Route[S]) Connect(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodConnect, ep)
}

// Trace registers a handler for TRACE requests.
func (r *Route[S]) Trace(ep handler.Endpoint[S]) *Route[S] {
	return r.Method(http.MethodTrace, ep)
}

// chainMiddlewares collects middleware from the outermost parent inward.
func (r *Route[S]) chainMiddlewares() []handler.Middleware[S] {
	if r.parent == nil {
		return slices.Clone(r.middlewares)
	}
	return slices.Concat(r.parent.chainMiddlewares(), r.middlewares)
}
