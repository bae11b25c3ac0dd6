package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

const (
	maxUsernameLen = 64
	minPasswordLen = 6
)

// AuthService implements signup and login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger

	// dummyHash is compared against on unknown usernames so both login
	// failure paths pay for one bcrypt comparison.
	dummyHash string
}

// NewAuthService fails only when the hasher cannot produce a hash, which
// points at a configuration problem.
func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash("login-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// Signup registers a new account with an empty profile and returns a session
// token for it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.AuthPayload, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	if err := s.ensureAvailable(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// The lookups above are only a fast path: two concurrent signups can both
	// pass them, and the store's unique indexes turn the loser into ErrConflict.
	created, err := s.users.CreateWithProfile(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user signed up")
	return &domain.AuthPayload{Token: token, User: created}, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return fmt.Errorf("%w: the username %s is already in use, please try another", domain.ErrConflict, username)
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return fmt.Errorf("%w: the email %s is already in use", domain.ErrConflict, email)
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return nil
}

// Login checks the credentials and returns a fresh session token.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.AuthPayload, error) {
	// Same normalization as Signup, so the stored username is what we look up.
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify(in.Password, s.dummyHash)
			return nil, fmt.Errorf("%w: cannot find a user with the username %s", domain.ErrNotFound, in.Username)
		}
		return nil, err
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.logger.Debug().Int64("user_id", user.ID).Msg("login rejected: wrong password")
		return nil, fmt.Errorf("%w: password is incorrect", domain.ErrInvalidCredential)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &domain.AuthPayload{Token: token, User: user}, nil
}

func validateSignup(in ports.SignupInput) error {
	switch {
	case in.Username == "" || utf8.RuneCountInString(in.Username) > maxUsernameLen:
		return fmt.Errorf("%w: username must be 1-%d characters", domain.ErrInvalidInput, maxUsernameLen)
	case !validEmail(in.Email):
		return fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	case len(in.Password) < minPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
