package tidal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/logger"
	"github.com/dmitrymomot/tidal/core/response"
	"github.com/dmitrymomot/tidal/core/router"
	"github.com/dmitrymomot/tidal/core/server"
)

// Server owns the route table, the global middleware and the shared state.
//
// Routes and middleware are registered first; the first call to Handler,
// Listen or ServeHTTP freezes the server. After that the route table and every
// chain are read-only and requests are dispatched concurrently.
type Server[S any] struct {
	router       *router.Router[*entry[S]]
	entries      []*entry[S]
	middlewares  []handler.Middleware[S]
	state        S
	errorHandler handler.ErrorHandler[S]
	logger       *slog.Logger

	errs       []error
	frozen     bool
	once       sync.Once
	startupErr error

	notFound         handler.Next[S]
	methodNotAllowed handler.Next[S]
}

// entry is the value stored at a trie terminal for one method.
type entry[S any] struct {
	route    *Route[S]
	endpoint handler.Endpoint[S]
	chain    handler.Next[S]
}

func newServer[S any](state S, opts ...Option[S]) *Server[S] {
	s := &Server[S]{
		router:       router.New[*entry[S]](),
		state:        state,
		errorHandler: response.TextErrorHandler[S],
		logger:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// At returns a route builder for pattern.
func (s *Server[S]) At(pattern string) *Route[S] {
	return &Route[S]{server: s, pattern: router.Join("/", pattern)}
}

// With appends global middleware. Global middleware wraps every route,
// including the 404 and 405 responses, and always runs outermost.
func (s *Server[S]) With(middlewares ...handler.Middleware[S]) *Server[S] {
	if s.frozen {
		s.errs = append(s.errs, ErrServerFrozen)
		return s
	}
	s.middlewares = append(s.middlewares, middlewares...)
	return s
}

// State returns the shared state handed to every request.
func (s *Server[S]) State() S {
	return s.state
}

// Routes lists the registered routes.
func (s *Server[S]) Routes() []router.RouteInfo {
	return s.router.Routes()
}

// Err returns every registration error collected so far, joined.
func (s *Server[S]) Err() error {
	return errors.Join(s.errs...)
}

// Handler freezes the server and returns it as an http.Handler.
// It fails if any registration error occurred; such a server must not serve.
func (s *Server[S]) Handler() (http.Handler, error) {
	s.freeze()
	if err := s.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Listen serves on addr until ctx is canceled, then shuts down gracefully.
// Registration errors are returned before the listener is opened.
func (s *Server[S]) Listen(ctx context.Context, addr string, opts ...server.Option) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}

	srv := server.New(addr, append([]server.Option{server.WithLogger(s.logger)}, opts...)...)
	return srv.Run(ctx, h)()
}

// ListenWithConfig is like Listen but builds the transport from cfg.
func (s *Server[S]) ListenWithConfig(ctx context.Context, cfg server.Config, opts ...server.Option) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg, append([]server.Option{server.WithLogger(s.logger)}, opts...)...)
	if err != nil {
		return err
	}
	return srv.Run(ctx, h)()
}

// ServeHTTP implements http.Handler. Every request gets exactly one response.
func (s *Server[S]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.freeze()

	// Match on the escaped form so params never depend on whether
	// net/http kept RawPath for this URL.
	path := r.URL.EscapedPath()
	if path == "" {
		path = "/"
	}

	res := s.router.Match(r.Method, path)
	req := handler.NewRequest(r, res.Params, s.state)

	var next handler.Next[S]
	switch {
	case s.startupErr != nil:
		next = s.misconfigured
	case res.Kind == router.Matched:
		next = res.Value.chain
	case res.Kind == router.PathMatchWrongMethod:
		next = s.methodNotAllowed
	default:
		next = s.notFound
	}

	resp := s.dispatch(req, next)

	// Set Allow header per RFC 9110 before responding with 405
	if res.Kind == router.PathMatchWrongMethod && resp.Status() == http.StatusMethodNotAllowed && resp.Header().Get("Allow") == "" {
		resp.SetHeader("Allow", strings.Join(res.Allowed, ", "))
	}

	if err := resp.Write(w); err != nil {
		s.logger.DebugContext(r.Context(), "failed to write response",
			logger.Error(err),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
		)
	}
}

// freeze builds every chain exactly once. Global middleware is prepended to
// the route middleware so it always wraps outermost.
func (s *Server[S]) freeze() {
	s.once.Do(func() {
		s.frozen = true

		for _, e := range s.entries {
			e.chain = handler.Chain(slices.Concat(s.middlewares, e.route.chainMiddlewares()), e.endpoint)
		}

		s.notFound = handler.Chain(s.middlewares, fail[S](router.ErrNotFound))
		s.methodNotAllowed = handler.Chain(s.middlewares, fail[S](router.ErrMethodNotAllowed))

		s.startupErr = s.Err()
		if s.startupErr != nil {
			s.logger.Error("server has registration errors and will refuse requests", logger.Error(s.startupErr))
		}
	})
}

// dispatch runs next and converts any failure into a response.
func (s *Server[S]) dispatch(req *handler.Request[S], next handler.Next[S]) *handler.Response {
	resp, err := s.call(req, next)
	if err == nil && resp == nil {
		err = ErrNilResponse
	}
	if err == nil && !validStatus(resp.Status()) {
		err = fmt.Errorf("%w: %d", ErrInvalidStatus, resp.Status())
	}
	if err == nil {
		return resp
	}

	if !response.IsDeliberate(err) {
		attrs := []any{
			logger.Error(err),
			logger.Method(req.Method()),
			logger.Path(req.Path()),
		}
		var pe PanicError
		if errors.As(err, &pe) {
			attrs = append(attrs, logger.Panic(pe.Value(), pe.Stack()))
		}
		s.logger.ErrorContext(req.Context(), "request failed", attrs...)
	}

	if resp := s.errorHandler(req, err); resp != nil && validStatus(resp.Status()) {
		return resp
	}
	return response.Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// call invokes next, recovering panics into errors so a single request can
// never take down the serving loop.
func (s *Server[S]) call(req *handler.Request[S], next handler.Next[S]) (resp *handler.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			resp = nil
			err = &panicError{value: p, stack: debug.Stack()}
		}
	}()

	return next(req)
}

// misconfigured answers requests on a server that failed registration.
func (s *Server[S]) misconfigured(*handler.Request[S]) (*handler.Response, error) {
	return nil, s.startupErr
}

// register adds a method entry for route.
func (s *Server[S]) register(route *Route[S], method string, ep handler.Endpoint[S]) {
	if s.frozen {
		s.errs = append(s.errs, &router.RegistrationError{Method: method, Pattern: route.pattern, Err: ErrServerFrozen})
		return
	}
	if ep == nil {
		s.errs = append(s.errs, &router.RegistrationError{Method: method, Pattern: route.pattern, Err: ErrNilEndpoint})
		return
	}

	e := &entry[S]{route: route, endpoint: ep}
	if err := s.router.Insert(method, route.pattern, e); err != nil {
		s.errs = append(s.errs, err)
		return
	}
	s.entries = append(s.entries, e)
}

func fail[S any](err error) handler.Endpoint[S] {
	return handler.EndpointFunc[S](func(*handler.Request[S]) (*handler.Response, error) {
		return nil, err
	})
}

// validStatus accepts what http.ResponseWriter.WriteHeader accepts, plus the
// zero status that Response.Write sends as 200.
func validStatus(code int) bool {
	return code == 0 || (code >= 100 && code <= 999)
}
