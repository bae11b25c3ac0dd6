package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/authz"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

const maxFeedTake = 100

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	policy *authz.Policy
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, policy *authz.Policy, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, policy: policy, logger: logger}
}

// Feed returns published posts, newest update first unless asked otherwise.
func (s *PostService) Feed(ctx context.Context, ac domain.AuthContext, in ports.FeedInput) ([]*domain.Post, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpFeed, authz.Ref{}, ac); err != nil {
		return nil, err
	}

	order := in.OrderBy
	switch order {
	case "":
		order = domain.SortDesc
	case domain.SortAsc, domain.SortDesc:
	default:
		return nil, fmt.Errorf("%w: orderBy must be asc or desc", domain.ErrInvalidInput)
	}

	filter := domain.FeedFilter{
		Search: strings.TrimSpace(in.SearchString),
		Skip:   max(in.Skip, 0),
		Take:   min(max(in.Take, 0), maxFeedTake),
		Order:  order,
	}
	posts, err := s.posts.Feed(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := embedAuthors(ctx, s.users, posts...); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostByID returns a published post, or a draft when the caller wrote it.
func (s *PostService) PostByID(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpPostByID, authz.Ref{ID: id}, ac); err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := embedAuthors(ctx, s.users, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DraftsByUser lists the unpublished posts of the referenced user. Only that
// user may read them.
func (s *PostService) DraftsByUser(ctx context.Context, ac domain.AuthContext, ref ports.UserRef) ([]*domain.Post, error) {
	if ref.ID == 0 && ref.Email == "" {
		return nil, fmt.Errorf("%w: a user id or email is required", domain.ErrInvalidInput)
	}

	target, err := s.policy.Authorize(ctx, authz.OpDraftsByUser, authz.Ref{ID: ref.ID, Email: ref.Email}, ac)
	if err != nil {
		return nil, err
	}

	unpublished := false
	drafts, err := s.posts.ListByAuthor(ctx, target.ID, &unpublished)
	if err != nil {
		return nil, err
	}
	if err := embedAuthors(ctx, s.users, drafts...); err != nil {
		return nil, err
	}
	return drafts, nil
}

// CreateDraft stores a new unpublished post authored by the caller.
func (s *PostService) CreateDraft(ctx context.Context, ac domain.AuthContext, in ports.CreateDraftInput) (*domain.Post, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpCreateDraft, authz.Ref{}, ac); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Description == "" || in.PostImage == "" {
		return nil, fmt.Errorf("%w: title, description and postImage are required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	post, err := s.posts.Create(ctx, &domain.Post{
		AuthorID:    ac.UserID,
		Title:       in.Title,
		Description: in.Description,
		PostImage:   in.PostImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("author_id", ac.UserID).Msg("failed to create draft")
		return nil, err
	}

	s.logger.Info().Int64("post_id", post.ID).Int64("author_id", post.AuthorID).Msg("draft created")
	return post, nil
}

// TogglePublish flips the published flag of one of the caller's posts.
func (s *PostService) TogglePublish(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpTogglePublish, authz.Ref{ID: id}, ac); err != nil {
		return nil, err
	}

	post, err := s.posts.TogglePublished(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("post_id", id).Bool("published", post.Published).Msg("post publish state changed")
	return post, nil
}

// IncrementViews records one view of a visible post.
func (s *PostService) IncrementViews(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpIncrementViews, authz.Ref{ID: id}, ac); err != nil {
		return nil, err
	}
	return s.posts.IncrementViews(ctx, id)
}

// Delete removes one of the caller's posts and returns it.
func (s *PostService) Delete(ctx context.Context, ac domain.AuthContext, id int64) (*domain.Post, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpDeletePost, authz.Ref{ID: id}, ac); err != nil {
		return nil, err
	}

	post, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("post_id", id).Int64("author_id", post.AuthorID).Msg("post deleted")
	return post, nil
}
