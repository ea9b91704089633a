package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Response is the value returned through the chain and written to the client.
type Response struct {
	status int
	header http.Header
	body   []byte
}

// NewResponse creates an empty response with the given status.
func NewResponse(status int) *Response {
	return &Response{
		status: status,
		header: make(http.Header),
	}
}

// Status returns the HTTP status code.
func (r *Response) Status() int { return r.status }

// SetStatus replaces the status code.
func (r *Response) SetStatus(status int) *Response {
	r.status = status
	return r
}

// Header returns the response headers for direct manipulation.
func (r *Response) Header() http.Header { return r.header }

// SetHeader sets a header, replacing existing values.
func (r *Response) SetHeader(key, value string) *Response {
	r.header.Set(key, value)
	return r
}

// Body returns the response body.
func (r *Response) Body() []byte { return r.body }

// SetBody replaces the body.
func (r *Response) SetBody(b []byte) *Response {
	r.body = b
	return r
}

// SetBodyString replaces the body with s and defaults the content type to text/plain.
func (r *Response) SetBodyString(s string) *Response {
	if r.header.Get("Content-Type") == "" {
		r.header.Set("Content-Type", "text/plain; charset=utf-8")
	}
	r.body = []byte(s)
	return r
}

// SetBodyJSON encodes v as the body and sets the JSON content type.
func (r *Response) SetBodyJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeBody, err)
	}
	r.header.Set("Content-Type", "application/json; charset=utf-8")
	r.body = b
	return nil
}

// Write serializes the response onto w. A zero status is written as 200.
func (r *Response) Write(w http.ResponseWriter) error {
	h := w.Header()
	for k, vv := range r.header {
		h[k] = append(h[k][:0:0], vv...)
	}
	if len(r.body) > 0 && h.Get("Content-Length") == "" {
		h.Set("Content-Length", strconv.Itoa(len(r.body)))
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.body) == 0 {
		return nil
	}
	_, err := w.Write(r.body)
	return err
}
