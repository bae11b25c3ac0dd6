package service

import (
	"context"
	"fmt"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// publicUser is the account as embedded in other resources: no relations,
// and the hash never leaves the store layer.
func publicUser(u *domain.User) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// embedAuthors sets Author on every post, loading each distinct author once.
func embedAuthors(ctx context.Context, users ports.UserRepository, posts ...*domain.Post) error {
	loaded := make(map[int64]*domain.User, len(posts))
	for _, p := range posts {
		author, ok := loaded[p.AuthorID]
		if !ok {
			u, err := users.FindByID(ctx, p.AuthorID)
			if err != nil {
				return fmt.Errorf("author of post %d: %w", p.ID, err)
			}
			author = publicUser(u)
			loaded[p.AuthorID] = author
		}
		p.Author = author
	}
	return nil
}
