package handler

import (
	"bytes"
	"net/http"
)

// FromHTTP adapts a standard http.Handler into an Endpoint. The handler's
// output is buffered and returned as a Response so middleware can still
// inspect and transform it.
func FromHTTP[S any](h http.Handler) Endpoint[S] {
	return EndpointFunc[S](func(req *Request[S]) (*Response, error) {
		w := newBufferedWriter()
		h.ServeHTTP(w, req.Request())
		return w.response(), nil
	})
}

// bufferedWriter is a minimal http.ResponseWriter that keeps everything in memory.
type bufferedWriter struct {
	header  http.Header
	body    bytes.Buffer
	status  int
	written bool
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header)}
}

func (w *bufferedWriter) Header() http.Header {
	return w.header
}

func (w *bufferedWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

func (w *bufferedWriter) response() *Response {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	resp := NewResponse(status)
	resp.header = w.header
	if w.body.Len() > 0 {
		resp.body = w.body.Bytes()
	}
	return resp
}
