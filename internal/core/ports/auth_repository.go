package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// UserRepository persists accounts keyed by their unique fields.
//
// Find* methods return domain.ErrNotFound when nothing matches. Create returns
// domain.ErrConflict when the store rejects a duplicate username or email.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreateWithProfile stores the user together with an empty profile.
	CreateWithProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// PasswordHasher is a one-way salted password hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. It never fails loudly:
	// a malformed hash is simply a mismatch.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs session tokens that embed a user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// TokenVerifier checks a session token and returns the embedded user id, or
// an error wrapping domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}
