package handler

// Endpoint is a terminal request handler. It returns either a response or an
// error; errors that implement StatusCode() int are rendered with that status,
// anything else becomes a 500.
type Endpoint[S any] interface {
	Call(req *Request[S]) (*Response, error)
}

// EndpointFunc adapts an ordinary function to the Endpoint interface.
type EndpointFunc[S any] func(req *Request[S]) (*Response, error)

// Call implements Endpoint.
func (f EndpointFunc[S]) Call(req *Request[S]) (*Response, error) {
	return f(req)
}

// Next invokes the remainder of the chain. It may be called at most once per
// middleware invocation.
type Next[S any] func(req *Request[S]) (*Response, error)

// Middleware wraps the rest of the chain with pre and post behavior.
// Returning without calling next short-circuits the chain.
type Middleware[S any] interface {
	Handle(req *Request[S], next Next[S]) (*Response, error)
}

// MiddlewareFunc adapts an ordinary function to the Middleware interface.
type MiddlewareFunc[S any] func(req *Request[S], next Next[S]) (*Response, error)

// Handle implements Middleware.
func (f MiddlewareFunc[S]) Handle(req *Request[S], next Next[S]) (*Response, error) {
	return f(req, next)
}

// ErrorHandler converts a failed request into the response sent to the client.
type ErrorHandler[S any] func(req *Request[S], err error) *Response
