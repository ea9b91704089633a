package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tidal"
	"github.com/dmitrymomot/tidal/core/handler"
	"github.com/dmitrymomot/tidal/core/response"
)

type (
	req  = handler.Request[struct{}]
	resp = handler.Response
)

func ok(s string) handler.Endpoint[struct{}] {
	return handler.EndpointFunc[struct{}](func(*req) (*resp, error) {
		return response.String(s), nil
	})
}

func newApp(t *testing.T, setup func(app *tidal.Server[struct{}])) http.Handler {
	t.Helper()
	app := tidal.New()
	setup(app)
	h, err := app.Handler()
	require.NoError(t, err)
	return h
}

func do(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	return do(h, httptest.NewRequest(http.MethodGet, target, nil))
}

func post(h http.Handler, target string, body io.Reader) *httptest.ResponseRecorder {
	return do(h, httptest.NewRequest(http.MethodPost, target, body))
}
