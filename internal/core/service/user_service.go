package service

import (
	"context"
	"errors"

	"github.com/inkpost/blog-api/internal/core/authz"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// UserService serves account reads with the profile and posts embedded.
type UserService struct {
	store  ports.Store
	policy *authz.Policy
}

func NewUserService(store ports.Store, policy *authz.Policy) *UserService {
	return &UserService{store: store, policy: policy}
}

// Me returns the caller's own account, drafts included.
func (s *UserService) Me(ctx context.Context, ac domain.AuthContext) (*domain.User, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpMe, authz.Ref{}, ac); err != nil {
		return nil, err
	}

	user, err := s.store.Users().FindByID(ctx, ac.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.embed(ctx, ac, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AllUsers lists every account. Drafts are only embedded for the caller.
func (s *UserService) AllUsers(ctx context.Context, ac domain.AuthContext) ([]*domain.User, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpAllUsers, authz.Ref{}, ac); err != nil {
		return nil, err
	}

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if err := s.embed(ctx, ac, u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *UserService) embed(ctx context.Context, ac domain.AuthContext, u *domain.User) error {
	profile, err := s.store.Profiles().FindByUserID(ctx, u.ID)
	switch {
	case err == nil:
		u.Profile = profile
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	var published *bool
	if !ac.IsOwner(u.ID) {
		onlyPublished := true
		published = &onlyPublished
	}
	posts, err := s.store.Posts().ListByAuthor(ctx, u.ID, published)
	if err != nil {
		return err
	}
	u.Posts = make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		u.Posts = append(u.Posts, *p)
	}
	return nil
}
