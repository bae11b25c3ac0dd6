package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// CreateDraftInput carries the fields of a new post.
type CreateDraftInput struct {
	Title       string
	Description string
	PostImage   string
}

// FeedInput carries the query parameters of the public feed.
type FeedInput struct {
	SearchString string
	Skip         int
	Take         int
	OrderBy      domain.SortOrder
}

// UserRef identifies a user by id or, when ID is zero, by email.
type UserRef struct {
	ID    int64
	Email string
}

// PostService defines use-case operations for posts. Every method is
// authorized against the caller's AuthContext before it touches the store.
type PostService interface {
	Feed(ctx context.Context, ac domain.AuthContext, in FeedInput) ([]*domain.Post, error)
	PostByID(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error)
	DraftsByUser(ctx context.Context, ac domain.AuthContext, ref UserRef) ([]*domain.Post, error)
	CreateDraft(ctx context.Context, ac domain.AuthContext, in CreateDraftInput) (*domain.Post, error)
	TogglePublish(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error)
	IncrementViews(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error)
	Delete(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error)
}

// UpdateProfileInput addresses the profile to change.
type UpdateProfileInput struct {
	ID     int64
	Fields domain.ProfileFields
}

// ProfileService defines use-case operations for profiles.
type ProfileService interface {
	Create(ctx context.Context, ac domain.AuthContext, fields domain.ProfileFields) (*domain.Profile, error)
	Update(ctx context.Context, ac domain.AuthContext, in UpdateProfileInput) (*domain.Profile, error)
}

// UserService defines the read side of accounts.
type UserService interface {
	Me(ctx context.Context, ac domain.AuthContext) (*domain.User, error)
	AllUsers(ctx context.Context, ac domain.AuthContext) ([]*domain.User, error)
}
