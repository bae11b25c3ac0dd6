package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
// Methods addressing a single post return domain.ErrNotFound when it is missing.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// Feed returns published posts matching filter.
	Feed(ctx context.Context, filter domain.FeedFilter) ([]*domain.Post, error)
	// ListByAuthor returns the author's posts. A nil published matches both states.
	ListByAuthor(ctx context.Context, authorID int64, published *bool) ([]*domain.Post, error)
	// TogglePublished flips the published flag in one store-side update.
	TogglePublished(ctx context.Context, id int64) (*domain.Post, error)
	// IncrementViews atomically adds one to the view counter.
	IncrementViews(ctx context.Context, id int64) (*domain.Post, error)
	Delete(ctx context.Context, id int64) (*domain.Post, error)
}

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	// Create returns domain.ErrConflict when the user already has a profile.
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id int64) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, id int64, fields domain.ProfileFields) (*domain.Profile, error)
}

// Store bundles the repositories of one backend so a single handle can be
// passed to every service.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Profiles() ProfileRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
