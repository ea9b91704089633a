package handler

import "errors"

var (
	ErrParamNotFound   = errors.New("path parameter not bound by the matched route")
	ErrNextCalledTwice = errors.New("middleware invoked next more than once")
	ErrDecodeBody      = errors.New("failed to decode request body")
	ErrEncodeBody      = errors.New("failed to encode response body")
)
