package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.AuthPayload, error)
	loginFn  func(ctx context.Context, in ports.LoginInput) (*domain.AuthPayload, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.AuthPayload, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.AuthPayload, error) {
	return s.loginFn(ctx, in)
}

type stubPostService struct {
	ports.PostService // unset methods panic

	feedFn   func(ac domain.AuthContext, in ports.FeedInput) ([]*domain.Post, error)
	draftsFn func(ac domain.AuthContext, ref ports.UserRef) ([]*domain.Post, error)
	createFn func(ac domain.AuthContext, in ports.CreateDraftInput) (*domain.Post, error)
	toggleFn func(ac domain.AuthContext, id int64) (*domain.Post, error)
}

func (s *stubPostService) Feed(_ context.Context, ac domain.AuthContext, in ports.FeedInput) ([]*domain.Post, error) {
	return s.feedFn(ac, in)
}

func (s *stubPostService) DraftsByUser(_ context.Context, ac domain.AuthContext, ref ports.UserRef) ([]*domain.Post, error) {
	return s.draftsFn(ac, ref)
}

func (s *stubPostService) CreateDraft(_ context.Context, ac domain.AuthContext, in ports.CreateDraftInput) (*domain.Post, error) {
	return s.createFn(ac, in)
}

func (s *stubPostService) TogglePublish(_ context.Context, ac domain.AuthContext, id int64) (*domain.Post, error) {
	return s.toggleFn(ac, id)
}

type stubProfileService struct {
	createFn func(ac domain.AuthContext, fields domain.ProfileFields) (*domain.Profile, error)
	updateFn func(ac domain.AuthContext, in ports.UpdateProfileInput) (*domain.Profile, error)
}

func (s *stubProfileService) Create(_ context.Context, ac domain.AuthContext, fields domain.ProfileFields) (*domain.Profile, error) {
	return s.createFn(ac, fields)
}

func (s *stubProfileService) Update(_ context.Context, ac domain.AuthContext, in ports.UpdateProfileInput) (*domain.Profile, error) {
	return s.updateFn(ac, in)
}

// newContext builds an echo context with the validator installed and, when
// ac is authenticated, the identity the Identity middleware would store.
func newContext(method, target string, body io.Reader, ac domain.AuthContext) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("auth_context", ac)
	return c, rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("service should not be called")
}


type stubUserService struct {
	meFn  func(ac domain.AuthContext) (*domain.User, error)
	allFn func(ac domain.AuthContext) ([]*domain.User, error)
}

func (s *stubUserService) Me(_ context.Context, ac domain.AuthContext) (*domain.User, error) {
	return s.meFn(ac)
}

func (s *stubUserService) AllUsers(_ context.Context, ac domain.AuthContext) ([]*domain.User, error) {
	return s.allFn(ac)
}
