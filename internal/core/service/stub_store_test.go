package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/blog-api/internal/core/authz"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
	"github.com/inkpost/blog-api/internal/infrastructure/security"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*domain.User
	posts    map[int64]*domain.Post
	profiles map[int64]*domain.Profile

	// skipUniqueLookups makes FindByUsername/FindByEmail miss, simulating a
	// concurrent signup that slipped past the pre-checks.
	skipUniqueLookups bool
}

func newStubStore() *stubStore {
	return &stubStore{
		users:    make(map[int64]*domain.User),
		posts:    make(map[int64]*domain.Post),
		profiles: make(map[int64]*domain.Profile),
	}
}

func (s *stubStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *stubStore) Users() ports.UserRepository       { return stubUsers{s} }
func (s *stubStore) Posts() ports.PostRepository       { return stubPosts{s} }
func (s *stubStore) Profiles() ports.ProfileRepository { return stubProfiles{s} }
func (s *stubStore) Ping(context.Context) error        { return nil }
func (s *stubStore) Close(context.Context) error       { return nil }

type stubUsers struct{ s *stubStore }

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r stubUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrNotFound
}

func (r stubUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.skipUniqueLookups {
		return nil, domain.ErrNotFound
	}
	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r stubUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r stubUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r stubUsers) CreateWithProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrConflict
		}
	}
	created := cloneUser(user)
	created.ID = r.s.id()
	profile := &domain.Profile{ID: r.s.id(), UserID: created.ID, CreatedAt: user.CreatedAt, UpdatedAt: user.CreatedAt}
	r.s.users[created.ID] = cloneUser(created)
	r.s.profiles[profile.ID] = profile

	p := *profile
	created.Profile = &p
	return created, nil
}

func (r stubUsers) List(context.Context) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubPosts struct{ s *stubStore }

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	return &clone
}

func (r stubPosts) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := clonePost(p)
	created.ID = r.s.id()
	r.s.posts[created.ID] = clonePost(created)
	return created, nil
}

func (r stubPosts) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, domain.ErrNotFound
}

func (r stubPosts) Feed(_ context.Context, f domain.FeedFilter) ([]*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.s.posts {
		if !p.Published {
			continue
		}
		if f.Search != "" && !strings.Contains(p.Title, f.Search) && !strings.Contains(p.Description, f.Search) {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Order == domain.SortAsc {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	if f.Skip >= len(out) {
		return []*domain.Post{}, nil
	}
	out = out[f.Skip:]
	if f.Take > 0 && f.Take < len(out) {
		out = out[:f.Take]
	}
	return out, nil
}

func (r stubPosts) ListByAuthor(_ context.Context, authorID int64, published *bool) ([]*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*domain.Post{}
	for _, p := range r.s.posts {
		if p.AuthorID != authorID {
			continue
		}
		if published != nil && p.Published != *published {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r stubPosts) update(id int64, fn func(*domain.Post)) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(p)
	return clonePost(p), nil
}

func (r stubPosts) TogglePublished(_ context.Context, id int64) (*domain.Post, error) {
	return r.update(id, func(p *domain.Post) { p.Published = !p.Published })
}

func (r stubPosts) IncrementViews(_ context.Context, id int64) (*domain.Post, error) {
	return r.update(id, func(p *domain.Post) { p.ViewCount++ })
}

func (r stubPosts) Delete(_ context.Context, id int64) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.s.posts, id)
	return p, nil
}

type stubProfiles struct{ s *stubStore }

func (r stubProfiles) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.profiles {
		if existing.UserID == p.UserID {
			return nil, domain.ErrConflict
		}
	}
	created := *p
	created.ID = r.s.id()
	stored := created
	r.s.profiles[created.ID] = &stored
	return &created, nil
}

func (r stubProfiles) FindByID(_ context.Context, id int64) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.profiles[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r stubProfiles) FindByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r stubProfiles) Update(_ context.Context, id int64, fields domain.ProfileFields) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fields.Apply(p)
	clone := *p
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Fixture wiring
// ---------------------------------------------------------------------------

type fixture struct {
	store    *stubStore
	tokens   *security.JWTIssuer
	auth     *AuthService
	posts    *PostService
	profiles *ProfileService
	users    *UserService
}

func newFixture(t testing.TB) *fixture {
	store := newStubStore()
	tokens, err := security.NewJWTIssuer("secret", 0)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	auth, err := NewAuthService(store.Users(), security.NewBcryptHasher(bcrypt.MinCost), tokens, zerolog.Nop())
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	policy := authz.NewPolicy(NewTargetLoader(store))
	return &fixture{
		store:    store,
		tokens:   tokens,
		auth:     auth,
		posts:    NewPostService(store.Posts(), store.Users(), policy, zerolog.Nop()),
		profiles: NewProfileService(store.Profiles(), store.Users(), policy, zerolog.Nop()),
		users:    NewUserService(store, policy),
	}
}

// signup registers a user and returns its authenticated context.
func (f *fixture) signup(t testing.TB, username string) domain.AuthContext {
	payload, err := f.auth.Signup(context.Background(), ports.SignupInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("signup %s: %v", username, err)
	}
	return domain.Authenticated(payload.User.ID)
}
