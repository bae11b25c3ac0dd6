package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/authz"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

type ProfileService struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
	policy   *authz.Policy
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, users ports.UserRepository, policy *authz.Policy, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, policy: policy, logger: logger}
}

func (s *ProfileService) withOwner(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("owner of profile %d: %w", p.ID, err)
	}
	p.User = publicUser(u)
	return p, nil
}

// Create attaches a profile to the caller. Accounts get an empty profile at
// signup, so this only succeeds for accounts that have none.
func (s *ProfileService) Create(ctx context.Context, ac domain.AuthContext, fields domain.ProfileFields) (*domain.Profile, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpCreateProfile, authz.Ref{}, ac); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("owner of new profile: %w", err)
	}

	now := time.Now().UTC()
	profile := &domain.Profile{UserID: ac.UserID, CreatedAt: now, UpdatedAt: now}
	fields.Apply(profile)

	created, err := s.profiles.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: user %d already has a profile, update it instead", domain.ErrConflict, ac.UserID)
		}
		return nil, err
	}

	s.logger.Info().Int64("profile_id", created.ID).Int64("user_id", ac.UserID).Msg("profile created")
	created.User = publicUser(owner)
	return created, nil
}

// Update changes a profile owned by the caller.
func (s *ProfileService) Update(ctx context.Context, ac domain.AuthContext, in ports.UpdateProfileInput) (*domain.Profile, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpUpdateProfile, authz.Ref{ID: in.ID}, ac); err != nil {
		return nil, err
	}

	updated, err := s.profiles.Update(ctx, in.ID, in.Fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("profile_id", in.ID).Int64("user_id", ac.UserID).Msg("profile updated")
	return s.withOwner(ctx, updated)
}
