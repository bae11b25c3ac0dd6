package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// SignupInput carries the credentials of a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// AuthService implements signup and login.
//
// Signup fails with domain.ErrConflict; Login fails with domain.ErrNotFound or
// domain.ErrInvalidCredential.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.AuthPayload, error)
	Login(ctx context.Context, in LoginInput) (*domain.AuthPayload, error)
}
