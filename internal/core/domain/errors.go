package domain

import "errors"

// Request-scoped failures. Services wrap these with fmt.Errorf("%w: ...") to
// add a human readable message; the API layer maps them with errors.Is.
var (
	ErrConflict          = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTooManyAttempts   = errors.New("too many attempts")
)
