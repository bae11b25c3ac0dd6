package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
	"github.com/inkpost/blog-api/internal/infrastructure/security"
)

func TestAuthService_Signup_Success(t *testing.T) {
	f := newFixture(t)

	payload, err := f.auth.Signup(context.Background(), ports.SignupInput{
		Username: "nikka_32",
		Email:    "nilu@prisma.io",
		Password: "random42",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if payload.Token == "" {
		t.Fatalf("expected token, got empty")
	}

	user := payload.User
	if user == nil || user.ID == 0 || user.Username != "nikka_32" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "random42" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("random42")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Profile == nil || user.Profile.UserID != user.ID {
		t.Fatalf("expected an empty profile owned by the user, got %+v", user.Profile)
	}
	if user.Profile.Website != "" || user.Profile.Hiring {
		t.Fatalf("expected profile to be empty, got %+v", user.Profile)
	}
	if len(user.Posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(user.Posts))
	}

	id, err := f.tokens.Verify(payload.Token)
	if err != nil || id != user.ID {
		t.Fatalf("token decodes to %d (%v), want %d", id, err, user.ID)
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.auth.Signup(ctx, ports.SignupInput{Username: "bob", Email: "bob@example.com", Password: "password1"})
	_, err := f.auth.Signup(ctx, ports.SignupInput{Username: "bob", Email: "other@example.com", Password: "password1"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.auth.Signup(ctx, ports.SignupInput{Username: "bob", Email: "bob@example.com", Password: "password1"})
	_, err := f.auth.Signup(ctx, ports.SignupInput{Username: "robert", Email: "bob@example.com", Password: "password1"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthService_Signup_StoreConflictAfterPrecheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.auth.Signup(ctx, ports.SignupInput{Username: "bob", Email: "bob@example.com", Password: "password1"})
	f.store.skipUniqueLookups = true

	_, err := f.auth.Signup(ctx, ports.SignupInput{Username: "bob", Email: "bob2@example.com", Password: "password1"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict from the store, got %v", err)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []ports.SignupInput{
		{Username: "", Email: "a@example.com", Password: "password1"},
		{Username: "alice", Email: "not-an-email", Password: "password1"},
		{Username: "alice", Email: "a@example.com", Password: "short"},
	}
	for _, in := range cases {
		if _, err := f.auth.Signup(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
	if len(f.store.users) != 0 {
		t.Fatalf("invalid signups must not reach the store")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signed, err := f.auth.Signup(ctx, ports.SignupInput{Username: "carol", Email: "carol@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	payload, err := f.auth.Login(ctx, ports.LoginInput{Username: "carol", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if payload.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if payload.User == nil || payload.User.ID != signed.User.ID {
		t.Fatalf("unexpected user: %+v", payload.User)
	}

	id, err := f.tokens.Verify(payload.Token)
	if err != nil || id != signed.User.ID {
		t.Fatalf("login token decodes to %d (%v), want %d", id, err, signed.User.ID)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.auth.Signup(ctx, ports.SignupInput{Username: "dave", Email: "dave@example.com", Password: "goodpass"})
	if _, err := f.auth.Login(ctx, ports.LoginInput{Username: "dave", Password: "badpass"}); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	f := newFixture(t)

	if _, err := f.auth.Login(context.Background(), ports.LoginInput{Username: "ghost", Password: "pass"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// countingHasher records Verify calls to check both login failure paths do
// the same amount of work.
type countingHasher struct {
	*security.BcryptHasher
	verifies int
}

func (h *countingHasher) Verify(plaintext, hash string) bool {
	h.verifies++
	return h.BcryptHasher.Verify(plaintext, hash)
}

func TestAuthService_Login_EqualWorkOnFailure(t *testing.T) {
	store := newStubStore()
	tokens, _ := security.NewJWTIssuer("secret", 0)
	hasher := &countingHasher{BcryptHasher: security.NewBcryptHasher(bcrypt.MinCost)}
	svc, err := NewAuthService(store.Users(), hasher, tokens, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	ctx := context.Background()
	_, _ = svc.Signup(ctx, ports.SignupInput{Username: "erin", Email: "erin@example.com", Password: "password1"})

	hasher.verifies = 0
	_, _ = svc.Login(ctx, ports.LoginInput{Username: "ghost", Password: "password1"})
	unknown := hasher.verifies

	hasher.verifies = 0
	_, _ = svc.Login(ctx, ports.LoginInput{Username: "erin", Password: "wrong-password"})
	wrong := hasher.verifies

	if unknown != 1 || wrong != 1 {
		t.Fatalf("expected one comparison on each failure path, got unknown=%d wrong=%d", unknown, wrong)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Login(context.Background(), ports.LoginInput{Username: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_TrimsUsernameLikeSignup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signed, err := f.auth.Signup(ctx, ports.SignupInput{Username: " nikka ", Email: "nikka@example.com", Password: "random42"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if signed.User.Username != "nikka" {
		t.Fatalf("expected stored username %q, got %q", "nikka", signed.User.Username)
	}

	for _, name := range []string{" nikka ", "nikka", "\tnikka"} {
		payload, err := f.auth.Login(ctx, ports.LoginInput{Username: name, Password: "random42"})
		if err != nil {
			t.Fatalf("login as %q failed: %v", name, err)
		}
		if payload.User.ID != signed.User.ID {
			t.Fatalf("login as %q returned user %d, want %d", name, payload.User.ID, signed.User.ID)
		}
	}

	if _, err := f.auth.Login(ctx, ports.LoginInput{Username: "   ", Password: "random42"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a blank username, got %v", err)
	}
}
