package models

import "errors"

// Sentinel errors shared across layers. Repositories and services wrap
// these with context; handlers map them to HTTP status codes.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("please authenticate")
	ErrForbidden       = errors.New("access denied")
	ErrConflict        = errors.New("resource already exists")
	ErrValidation      = errors.New("invalid input")

	// Token verification failures. Both are terminal for the presented
	// token; callers must not renew silently.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
