package tidal_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tidal"
	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/logger"
	"github.com/dmitrymomot/tidal/core/response"
	"github.com/dmitrymomot/tidal/core/router"
)

type appState struct {
	hits atomic.Int64
}

type (
	req  = handler.Request[*appState]
	next = handler.Next[*appState]
)

func text(s string) handler.Endpoint[*appState] {
	return handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return response.String(s), nil
	})
}

type trace struct {
	mu    sync.Mutex
	steps []string
}

func (tr *trace) mw(name string) handler.Middleware[*appState] {
	return handler.MiddlewareFunc[*appState](func(r *req, n next) (*handler.Response, error) {
		tr.mu.Lock()
		tr.steps = append(tr.steps, "pre "+name)
		tr.mu.Unlock()
		resp, err := n(r)
		tr.mu.Lock()
		tr.steps = append(tr.steps, "post "+name)
		tr.mu.Unlock()
		return resp, err
	})
}

func (tr *trace) reset() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	s := tr.steps
	tr.steps = nil
	return s
}

func serve(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, body))
	return w
}

func mustHandler[S any](t *testing.T, s *tidal.Server[S]) http.Handler {
	t.Helper()
	h, err := s.Handler()
	require.NoError(t, err)
	return h
}

func TestParamsReachEndpoint(t *testing.T) {
	t.Parallel()

	app := tidal.WithState(&appState{})
	app.At("/users/:id").Get(handler.EndpointFunc[*appState](func(r *req) (*handler.Response, error) {
		id, err := r.Param("id")
		if err != nil {
			return nil, err
		}
		return response.String("user " + id), nil
	}))
	app.At("/files/*rest").Get(handler.EndpointFunc[*appState](func(r *req) (*handler.Response, error) {
		return response.String(r.Params().Map()["rest"]), nil
	}))
	app.At("/exact").Get(handler.EndpointFunc[*appState](func(r *req) (*handler.Response, error) {
		assert.Empty(t, r.Params())
		return response.String("exact"), nil
	}))

	h := mustHandler(t, app)

	w := serve(t, h, http.MethodGet, "/users/42", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user 42", w.Body.String())

	w = serve(t, h, http.MethodGet, "/files/a/b/c", nil)
	assert.Equal(t, "a/b/c", w.Body.String())

	w = serve(t, h, http.MethodGet, "/exact/", nil)
	assert.Equal(t, "exact", w.Body.String())
}

func TestStateIsShared(t *testing.T) {
	t.Parallel()

	state := &appState{}
	app := tidal.WithState(state)
	app.At("/hit").Post(handler.EndpointFunc[*appState](func(r *req) (*handler.Response, error) {
		if r.State() != state {
			return nil, errors.New("state was copied")
		}
		r.State().hits.Add(1)
		return response.NoContent(), nil
	}))
	assert.Same(t, state, app.State())

	h := mustHandler(t, app)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := serve(t, h, http.MethodPost, "/hit", nil)
			assert.Equal(t, http.StatusNoContent, w.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), state.hits.Load())
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	tr := &trace{}
	app := tidal.WithState(&appState{}, tidal.WithMiddleware(tr.mw("G1")))
	app.With(tr.mw("G2"))

	api := app.At("/api").With(tr.mw("api"))
	api.At("/users").With(tr.mw("users")).Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		tr.mu.Lock()
		tr.steps = append(tr.steps, "endpoint")
		tr.mu.Unlock()
		return response.String("ok"), nil
	}))
	api.Get(text("api root"))

	h := mustHandler(t, app)

	serve(t, h, http.MethodGet, "/api/users", nil)
	assert.Equal(t, []string{
		"pre G1", "pre G2", "pre api", "pre users",
		"endpoint",
		"post users", "post api", "post G2", "post G1",
	}, tr.reset())

	w := serve(t, h, http.MethodGet, "/api", nil)
	assert.Equal(t, "api root", w.Body.String())
	assert.Equal(t, []string{"pre G1", "pre G2", "pre api", "post api", "post G2", "post G1"}, tr.reset())
}

func TestRouteMiddlewareAppliesToAllMethods(t *testing.T) {
	t.Parallel()

	tr := &trace{}
	app := tidal.WithState(&appState{})
	route := app.At("/thing")
	route.Get(text("get"))
	// added after Get, still wraps it
	route.With(tr.mw("route"))
	route.Post(text("post"))

	h := mustHandler(t, app)

	serve(t, h, http.MethodGet, "/thing", nil)
	assert.Equal(t, []string{"pre route", "post route"}, tr.reset())
	serve(t, h, http.MethodPost, "/thing", nil)
	assert.Equal(t, []string{"pre route", "post route"}, tr.reset())
}

func TestNotFoundAndMethodNotAllowedPassGlobalMiddleware(t *testing.T) {
	t.Parallel()

	tr := &trace{}
	app := tidal.WithState(&appState{})
	app.With(tr.mw("global"))
	app.At("/items").With(tr.mw("route")).Get(text("list")).Post(text("create"))

	h := mustHandler(t, app)

	w := serve(t, h, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{"pre global", "post global"}, tr.reset())

	w = serve(t, h, http.MethodDelete, "/items", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, HEAD, POST", w.Header().Get("Allow"))
	assert.Equal(t, []string{"pre global", "post global"}, tr.reset())
}

func TestHeadFallsBackToGetAndAll(t *testing.T) {
	t.Parallel()

	app := tidal.New()
	app.At("/page").Get(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		return response.String("page"), nil
	}))
	app.At("/any").All(handler.EndpointFunc[struct{}](func(r *handler.Request[struct{}]) (*handler.Response, error) {
		return response.String(r.Method()), nil
	}))

	h := mustHandler(t, app)

	w := serve(t, h, http.MethodHead, "/page", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h, "PURGE", "/any", nil)
	assert.Equal(t, "PURGE", w.Body.String())
}

func TestEndpointErrors(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := logger.New(logger.WithOutput(&logs), logger.WithLevel(slog.LevelDebug))

	app := tidal.WithState(&appState{}, tidal.WithLogger[*appState](log))
	app.At("/teapot").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return nil, response.NewHTTPError(http.StatusTeapot, "short and stout")
	}))
	app.At("/broken").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return nil, errors.New("connection refused to 10.0.0.5")
	}))
	app.At("/panic").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		panic("kaboom")
	}))
	app.At("/nil").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return nil, nil
	}))
	app.At("/twice").With(handler.MiddlewareFunc[*appState](func(r *req, n next) (*handler.Response, error) {
		_, _ = n(r)
		return n(r)
	})).Get(text("once"))

	h := mustHandler(t, app)

	w := serve(t, h, http.MethodGet, "/teapot", nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short and stout", w.Body.String())

	for _, path := range []string{"/broken", "/panic", "/nil", "/twice"} {
		w = serve(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, "Internal Server Error", w.Body.String(), path)
	}

	out := logs.String()
	assert.Contains(t, out, "connection refused to 10.0.0.5")
	assert.Contains(t, out, "kaboom")
	assert.Contains(t, out, handler.ErrNextCalledTwice.Error())
	assert.Contains(t, out, tidal.ErrNilResponse.Error())
	assert.NotContains(t, out, "short and stout", "deliberate errors are not logged as failures")
}

func TestPanicErrorReachesErrorHandler(t *testing.T) {
	t.Parallel()

	var got tidal.PanicError
	app := tidal.New(tidal.WithErrorHandler(func(_ *handler.Request[struct{}], err error) *handler.Response {
		errors.As(err, &got)
		return response.Text(http.StatusServiceUnavailable, "custom")
	}))
	app.At("/").Get(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		panic(io.ErrUnexpectedEOF)
	}))

	w := serve(t, mustHandler(t, app), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "custom", w.Body.String())
	require.NotNil(t, got)
	assert.Equal(t, io.ErrUnexpectedEOF, got.Value())
	assert.NotEmpty(t, got.Stack())
	assert.ErrorIs(t, got, io.ErrUnexpectedEOF)
}

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	app := tidal.New(tidal.WithErrorHandler(response.JSONErrorHandler[struct{}]))
	app.At("/x").Get(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		return nil, response.ErrConflict.WithMessage("already exists")
	}))

	h := mustHandler(t, app)
	w := serve(t, h, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":"conflict","message":"already exists"}`, w.Body.String())

	w = serve(t, h, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)
}

func TestRegistrationErrorsBlockServing(t *testing.T) {
	t.Parallel()

	app := tidal.New()
	app.At("/users/:id").Get(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		return response.String("ok"), nil
	}))
	app.At("/users/:name").Post(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		return response.String("ok"), nil
	}))
	app.At("/nil").Get(nil)

	err := app.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, router.ErrParamConflict)
	assert.ErrorIs(t, err, tidal.ErrNilEndpoint)

	var regErr *router.RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "/users/:name", regErr.Pattern)

	h, err := app.Handler()
	assert.Nil(t, h)
	assert.ErrorIs(t, err, router.ErrParamConflict)

	err = app.Listen(context.Background(), "127.0.0.1:0")
	assert.ErrorIs(t, err, router.ErrParamConflict)

	// Used directly as an http.Handler it refuses every request.
	w := serve(t, app, http.MethodGet, "/users/1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRegistrationAfterFreeze(t *testing.T) {
	t.Parallel()

	app := tidal.New()
	route := app.At("/a").Get(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		return response.String("a"), nil
	}))
	h := mustHandler(t, app)

	route.Post(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		return response.String("late"), nil
	}))
	app.At("/b").With(handler.MiddlewareFunc[struct{}](func(r *handler.Request[struct{}], n handler.Next[struct{}]) (*handler.Response, error) {
		return n(r)
	}))

	assert.ErrorIs(t, app.Err(), tidal.ErrServerFrozen)

	// the frozen table keeps serving
	w := serve(t, h, http.MethodGet, "/a", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(t, h, http.MethodPost, "/a", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutesAndNesting(t *testing.T) {
	t.Parallel()

	app := tidal.New()
	ep := handler.EndpointFunc[struct{}](func(r *handler.Request[struct{}]) (*handler.Response, error) {
		return response.String(r.Path()), nil
	})
	api := app.At("/api/")
	api.At("/users").Get(ep).Post(ep)
	api.At("users/:id").Put(ep).Delete(ep).Patch(ep)
	app.At("/").Options(ep)

	assert.Equal(t, "/api/users/:id", api.At("users/:id").Pattern())
	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodOptions, Pattern: "/"},
		{Method: http.MethodGet, Pattern: "/api/users"},
		{Method: http.MethodPost, Pattern: "/api/users"},
		{Method: http.MethodDelete, Pattern: "/api/users/:id"},
		{Method: http.MethodPatch, Pattern: "/api/users/:id"},
		{Method: http.MethodPut, Pattern: "/api/users/:id"},
	}, app.Routes())

	w := serve(t, mustHandler(t, app), http.MethodPatch, "/api/users/9", strings.NewReader("{}"))
	assert.Equal(t, "/api/users/9", w.Body.String())
}

func TestHTTPHandlerAsEndpoint(t *testing.T) {
	t.Parallel()

	tr := &trace{}
	app := tidal.WithState(&appState{})
	app.With(tr.mw("global"))
	app.At("/legacy").Get(handler.FromHTTP[*appState](http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Legacy", "yes")
		_, _ = io.WriteString(w, "legacy")
	})))

	w := serve(t, mustHandler(t, app), http.MethodGet, "/legacy", nil)
	assert.Equal(t, "legacy", w.Body.String())
	assert.Equal(t, "yes", w.Header().Get("X-Legacy"))
	assert.Equal(t, []string{"pre global", "post global"}, tr.reset())
}

func TestParamsKeepPercentEncoding(t *testing.T) {
	t.Parallel()

	app := tidal.WithState(&appState{})
	app.At("/files/:name").Get(handler.EndpointFunc[*appState](func(r *req) (*handler.Response, error) {
		name, err := r.Param("name")
		if err != nil {
			return nil, err
		}
		return response.String(name), nil
	}))
	h := mustHandler(t, app)

	w := serve(t, h, http.MethodGet, "/files/a%2Fb", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a%2Fb", w.Body.String())

	w = serve(t, h, http.MethodGet, "/files/plain", nil)
	assert.Equal(t, "plain", w.Body.String())

	w = serve(t, h, http.MethodGet, "/files/a%20b", nil)
	assert.Equal(t, "a%20b", w.Body.String())
}

func TestParamEncodingIndependentOfOtherSegments(t *testing.T) {
	t.Parallel()

	app := tidal.WithState(&appState{})
	app.At("/two/:a/:b").Get(handler.EndpointFunc[*appState](func(r *req) (*handler.Response, error) {
		a, _ := r.Param("a")
		b, _ := r.Param("b")
		return response.String(a + "|" + b), nil
	}))
	h := mustHandler(t, app)

	tests := []struct {
		target string
		want   string
	}{
		{"/two/a%20b/x", "a%20b|x"},
		{"/two/a%20b/x%2Fy", "a%20b|x%2Fy"},
		{"/two/plain/x%2Fy", "plain|x%2Fy"},
	}
	for _, tt := range tests {
		w := serve(t, h, http.MethodGet, tt.target, nil)
		assert.Equal(t, http.StatusOK, w.Code, tt.target)
		assert.Equal(t, tt.want, w.Body.String(), tt.target)
	}
}

type zeroStatusError struct{}

func (zeroStatusError) Error() string   { return "boom" }
func (zeroStatusError) StatusCode() int { return 0 }

func TestNonErrorStatusesBecomeServerErrors(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := logger.New(logger.WithOutput(&logs))

	app := tidal.WithState(&appState{}, tidal.WithLogger[*appState](log))
	app.At("/zero-http-error").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return nil, response.HTTPError{Message: "oops"}
	}))
	app.At("/zero-status").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return nil, zeroStatusError{}
	}))
	app.At("/ok-status").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return nil, response.HTTPError{Status: http.StatusOK, Message: "fine?"}
	}))
	h := mustHandler(t, app)

	for _, path := range []string{"/zero-http-error", "/zero-status", "/ok-status"} {
		w := serve(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, "Internal Server Error", w.Body.String(), path)
	}

	out := logs.String()
	assert.Contains(t, out, "oops")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "fine")
}

func TestInvalidResponseStatus(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := logger.New(logger.WithOutput(&logs))

	app := tidal.WithState(&appState{}, tidal.WithLogger[*appState](log))
	app.At("/big").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return handler.NewResponse(1000), nil
	}))
	app.At("/negative").Get(handler.EndpointFunc[*appState](func(*req) (*handler.Response, error) {
		return handler.NewResponse(-1), nil
	}))

	h := mustHandler(t, app)
	for _, path := range []string{"/big", "/negative"} {
		var w *httptest.ResponseRecorder
		require.NotPanics(t, func() { w = serve(t, h, http.MethodGet, path, nil) }, path)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
	}
	assert.Contains(t, logs.String(), tidal.ErrInvalidStatus.Error())
}

func TestErrorHandlerWithInvalidStatus(t *testing.T) {
	t.Parallel()

	app := tidal.New(tidal.WithErrorHandler(func(*handler.Request[struct{}], error) *handler.Response {
		return handler.NewResponse(42)
	}))
	app.At("/").Get(handler.EndpointFunc[struct{}](func(*handler.Request[struct{}]) (*handler.Response, error) {
		return nil, response.ErrConflict
	}))

	var w *httptest.ResponseRecorder
	require.NotPanics(t, func() { w = serve(t, mustHandler(t, app), http.MethodGet, "/", nil) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", w.Body.String())
}
