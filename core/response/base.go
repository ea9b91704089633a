package response

import (
	"net/http"

	"github.com/dmitrymomot/tidal/core/handler"
)

// Text creates a text/plain response.
func Text(status int, content string) *handler.Response {
	return handler.NewResponse(status).SetBodyString(content)
}

// String creates a text/plain response with 200 OK status.
func String(content string) *handler.Response {
	return Text(http.StatusOK, content)
}

// HTML creates a text/html response.
func HTML(status int, content string) *handler.Response {
	return handler.NewResponse(status).
		SetHeader("Content-Type", "text/html; charset=utf-8").
		SetBody([]byte(content))
}

// Bytes creates a response with raw content and the given content type.
func Bytes(status int, content []byte, contentType string) *handler.Response {
	resp := handler.NewResponse(status).SetBody(content)
	if contentType != "" {
		resp.SetHeader("Content-Type", contentType)
	}
	return resp
}

// JSON creates an application/json response from v.
func JSON(status int, v any) (*handler.Response, error) {
	resp := handler.NewResponse(status)
	if err := resp.SetBodyJSON(v); err != nil {
		return nil, err
	}
	return resp, nil
}

// NoContent creates a 204 response without body.
func NoContent() *handler.Response {
	return handler.NewResponse(http.StatusNoContent)
}

// Status creates an empty response with the given status code.
func Status(code int) *handler.Response {
	return handler.NewResponse(code)
}

// Redirect creates a redirect response to url.
// Status defaults to 302 Found when it is not a 3xx code.
func Redirect(status int, url string) *handler.Response {
	if status < 300 || status > 399 {
		status = http.StatusFound
	}
	return handler.NewResponse(status).SetHeader("Location", url)
}
