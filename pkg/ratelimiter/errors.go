package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrAlreadyStarted    = errors.New("cleanup already started")
	ErrNotStarted        = errors.New("cleanup not started")
)
