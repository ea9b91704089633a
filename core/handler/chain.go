package handler

import "sync/atomic"

// Chain builds a single Next from a middleware stack and endpoint.
// The first middleware is the outermost layer: for [A, B] around E the pre
// phases run A, B, E and the post phases run E, B, A.
func Chain[S any](middlewares []Middleware[S], endpoint Endpoint[S]) Next[S] {
	// Start with the endpoint
	next := Next[S](endpoint.Call)

	// Wrap in middleware in reverse order
	// so the first middleware runs first
	for i := len(middlewares) - 1; i >= 0; i-- {
		next = wrap(middlewares[i], next)
	}

	return next
}

// wrap binds mw to inner. Every invocation hands mw a fresh continuation that
// refuses to run inner twice.
func wrap[S any](mw Middleware[S], inner Next[S]) Next[S] {
	return func(req *Request[S]) (*Response, error) {
		var called atomic.Bool
		return mw.Handle(req, func(req *Request[S]) (*Response, error) {
			if !called.CompareAndSwap(false, true) {
				return nil, ErrNextCalledTwice
			}
			return inner(req)
		})
	}
}
