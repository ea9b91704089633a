// Package handler defines the request pipeline types: Endpoint, Middleware,
// Request and Response.
//
// An Endpoint turns a request into a response or an error. A Middleware
// receives the request and a Next continuation for the rest of the chain and
// may act before and after calling it, or skip it to short-circuit:
//
//	auth := handler.MiddlewareFunc[*App](func(req *handler.Request[*App], next handler.Next[*App]) (*handler.Response, error) {
//		if req.Header("Authorization") == "" {
//			return nil, response.ErrUnauthorized
//		}
//		return next(req)
//	})
//
// Chain composes middleware around an endpoint. The first middleware is the
// outermost layer. Next may be called at most once per invocation; a second
// call returns ErrNextCalledTwice.
//
// Request carries the shared state S by value, so servers that need mutable
// state use a pointer type and synchronize it themselves.
package handler
