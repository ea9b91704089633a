package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/tidal/core/router"
)

// Request is the per-request view handed to middleware and endpoints.
// It carries the matched path parameters and a reference to the server's
// shared state. The state is never copied or owned by the request.
type Request[S any] struct {
	r      *http.Request
	params router.Params
	state  S
	body   *bodyCache
}

// bodyCache is shared between copies made by WithContext so the body is
// read from the wire at most once.
type bodyCache struct {
	data []byte
	read bool
}

// NewRequest wraps r with its matched params and the shared state.
func NewRequest[S any](r *http.Request, params router.Params, state S) *Request[S] {
	return &Request[S]{r: r, params: params, state: state, body: &bodyCache{}}
}

// Method returns the HTTP method.
func (r *Request[S]) Method() string { return r.r.Method }

// Path returns the request path.
func (r *Request[S]) Path() string { return r.r.URL.Path }

// URL returns the parsed request URL.
func (r *Request[S]) URL() *url.URL { return r.r.URL }

// Header returns the first value of the named header.
func (r *Request[S]) Header(key string) string { return r.r.Header.Get(key) }

// Headers returns all request headers.
func (r *Request[S]) Headers() http.Header { return r.r.Header }

// Query returns the first value of the named query parameter.
func (r *Request[S]) Query(key string) string { return r.r.URL.Query().Get(key) }

// Param returns the value bound to key by the matched pattern.
// Returns ErrParamNotFound when the pattern has no such parameter.
func (r *Request[S]) Param(key string) (string, error) {
	if v, ok := r.params.Get(key); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrParamNotFound, key)
}

// Params returns all bound parameters in pattern order.
func (r *Request[S]) Params() router.Params { return r.params }

// State returns the application state. It is the same instance for every
// request only when S is a pointer or another reference type.
func (r *Request[S]) State() S { return r.state }

// Context returns the request context. It is canceled when the client goes away.
func (r *Request[S]) Context() context.Context { return r.r.Context() }

// Request returns the underlying *http.Request.
func (r *Request[S]) Request() *http.Request { return r.r }

// WithContext returns a shallow copy of r with its context replaced.
// Params and state are shared with the original.
func (r *Request[S]) WithContext(ctx context.Context) *Request[S] {
	r2 := *r
	r2.r = r.r.WithContext(ctx)
	return &r2
}

// SetValue stores a request-scoped value visible to the rest of the chain.
func (r *Request[S]) SetValue(key, val any) {
	r.r = r.r.WithContext(context.WithValue(r.r.Context(), key, val))
}

// Value returns a request-scoped value stored with SetValue.
func (r *Request[S]) Value(key any) any {
	return r.r.Context().Value(key)
}

// Body returns the body handle. Nothing is read until the caller reads it.
func (r *Request[S]) Body() io.ReadCloser {
	if r.body.read {
		return io.NopCloser(bytes.NewReader(r.body.data))
	}
	if r.r.Body == nil {
		return http.NoBody
	}
	return r.r.Body
}

// BodyBytes reads the whole body. The result is cached, so it may be called
// repeatedly and mixed with BodyString and BodyJSON.
func (r *Request[S]) BodyBytes() ([]byte, error) {
	if r.body.read {
		return r.body.data, nil
	}

	body := r.Body()
	b, err := io.ReadAll(body)
	_ = body.Close()
	if err != nil {
		return nil, err
	}

	r.body.data = b
	r.body.read = true
	r.r.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}

// BodyString reads the whole body as a string.
func (r *Request[S]) BodyString() (string, error) {
	b, err := r.BodyBytes()
	return string(b), err
}

// BodyJSON decodes the JSON body into v.
func (r *Request[S]) BodyJSON(v any) error {
	b, err := r.BodyBytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeBody, err)
	}
	return nil
}
