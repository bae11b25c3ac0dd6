package service

import (
	"context"
	"errors"
	"testing"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

func validDraft() ports.CreateDraftInput {
	return ports.CreateDraftInput{Title: "HomeTown", Description: "Gol", PostImage: "https://img.example.com/1.png"}
}

func TestPostService_CreateDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	post, err := f.posts.CreateDraft(ctx, alice, validDraft())
	if err != nil {
		t.Fatalf("CreateDraft returned error: %v", err)
	}
	if post.Published {
		t.Fatalf("new posts must be drafts")
	}
	if post.AuthorID != alice.UserID {
		t.Fatalf("expected author %d, got %d", alice.UserID, post.AuthorID)
	}
	if post.ViewCount != 0 {
		t.Fatalf("expected zero views, got %d", post.ViewCount)
	}
}

func TestPostService_CreateDraft_Anonymous(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.CreateDraft(context.Background(), domain.Anonymous(), validDraft())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(f.store.posts) != 0 {
		t.Fatalf("denied requests must not write")
	}
}

func TestPostService_CreateDraft_Validation(t *testing.T) {
	f := newFixture(t)
	alice := f.signup(t, "alice")

	_, err := f.posts.CreateDraft(context.Background(), alice, ports.CreateDraftInput{Title: "  "})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPostService_TogglePublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	post, _ := f.posts.CreateDraft(ctx, alice, validDraft())

	if _, err := f.posts.TogglePublish(ctx, bob, post.ID); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for foreign post, got %v", err)
	}
	if f.store.posts[post.ID].Published {
		t.Fatalf("denied toggle must not change the post")
	}

	toggled, err := f.posts.TogglePublish(ctx, alice, post.ID)
	if err != nil {
		t.Fatalf("TogglePublish returned error: %v", err)
	}
	if !toggled.Published {
		t.Fatalf("expected post to be published")
	}

	toggled, err = f.posts.TogglePublish(ctx, alice, post.ID)
	if err != nil || toggled.Published {
		t.Fatalf("expected second toggle to unpublish, got %+v, %v", toggled, err)
	}
}

func TestPostService_TogglePublish_Missing(t *testing.T) {
	f := newFixture(t)
	alice := f.signup(t, "alice")

	if _, err := f.posts.TogglePublish(context.Background(), alice, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.posts.TogglePublish(context.Background(), domain.Anonymous(), 999); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestPostService_PostByID_DraftVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	post, _ := f.posts.CreateDraft(ctx, alice, validDraft())

	if _, err := f.posts.PostByID(ctx, bob, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected draft to look missing to others, got %v", err)
	}
	if got, err := f.posts.PostByID(ctx, alice, post.ID); err != nil || got.ID != post.ID {
		t.Fatalf("author should see the draft: %+v, %v", got, err)
	}

	_, _ = f.posts.TogglePublish(ctx, alice, post.ID)
	if _, err := f.posts.PostByID(ctx, domain.Anonymous(), post.ID); err != nil {
		t.Fatalf("published post should be public: %v", err)
	}
}

func TestPostService_IncrementViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	post, _ := f.posts.CreateDraft(ctx, alice, validDraft())

	if _, err := f.posts.IncrementViews(ctx, domain.Anonymous(), post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected drafts to be hidden, got %v", err)
	}

	_, _ = f.posts.TogglePublish(ctx, alice, post.ID)
	for i := 0; i < 3; i++ {
		if _, err := f.posts.IncrementViews(ctx, domain.Anonymous(), post.ID); err != nil {
			t.Fatalf("IncrementViews returned error: %v", err)
		}
	}
	if got := f.store.posts[post.ID].ViewCount; got != 3 {
		t.Fatalf("expected 3 views, got %d", got)
	}
}

func TestPostService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	post, _ := f.posts.CreateDraft(ctx, alice, validDraft())

	if _, err := f.posts.Delete(ctx, bob, post.ID); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	deleted, err := f.posts.Delete(ctx, alice, post.ID)
	if err != nil || deleted.ID != post.ID {
		t.Fatalf("Delete returned %+v, %v", deleted, err)
	}
	if _, ok := f.store.posts[post.ID]; ok {
		t.Fatalf("post should be gone")
	}
}

func TestPostService_Feed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	var ids []int64
	for _, title := range []string{"What is Life #4", "HomeTown", "Draft only"} {
		in := validDraft()
		in.Title = title
		p, _ := f.posts.CreateDraft(ctx, alice, in)
		ids = append(ids, p.ID)
	}
	_, _ = f.posts.TogglePublish(ctx, alice, ids[0])
	_, _ = f.posts.TogglePublish(ctx, alice, ids[1])

	feed, err := f.posts.Feed(ctx, domain.Anonymous(), ports.FeedInput{})
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(feed))
	}

	feed, _ = f.posts.Feed(ctx, domain.Anonymous(), ports.FeedInput{SearchString: "Home"})
	if len(feed) != 1 || feed[0].ID != ids[1] {
		t.Fatalf("unexpected search result: %+v", feed)
	}

	feed, _ = f.posts.Feed(ctx, domain.Anonymous(), ports.FeedInput{Take: 1, OrderBy: domain.SortAsc})
	if len(feed) != 1 || feed[0].ID != ids[0] {
		t.Fatalf("unexpected paged result: %+v", feed)
	}

	if _, err := f.posts.Feed(ctx, domain.Anonymous(), ports.FeedInput{OrderBy: "sideways"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPostService_DraftsByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	draft, _ := f.posts.CreateDraft(ctx, alice, validDraft())
	published, _ := f.posts.CreateDraft(ctx, alice, validDraft())
	_, _ = f.posts.TogglePublish(ctx, alice, published.ID)

	drafts, err := f.posts.DraftsByUser(ctx, alice, ports.UserRef{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("DraftsByUser returned error: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != draft.ID {
		t.Fatalf("unexpected drafts: %+v", drafts)
	}

	if _, err := f.posts.DraftsByUser(ctx, bob, ports.UserRef{ID: alice.UserID}); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := f.posts.DraftsByUser(ctx, alice, ports.UserRef{ID: 12345}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.posts.DraftsByUser(ctx, alice, ports.UserRef{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPostService_ReadsEmbedAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	mine, _ := f.posts.CreateDraft(ctx, alice, validDraft())
	theirs, _ := f.posts.CreateDraft(ctx, bob, validDraft())
	draft, _ := f.posts.CreateDraft(ctx, alice, validDraft())
	_, _ = f.posts.TogglePublish(ctx, alice, mine.ID)
	_, _ = f.posts.TogglePublish(ctx, bob, theirs.ID)

	checkAuthor := func(p *domain.Post, want string) {
		t.Helper()
		if p.Author == nil {
			t.Fatalf("post %d has no author", p.ID)
		}
		if p.Author.ID != p.AuthorID || p.Author.Username != want {
			t.Fatalf("post %d: expected author %s, got %+v", p.ID, want, p.Author)
		}
		if p.Author.PasswordHash != "" {
			t.Fatalf("post %d: author carries a password hash", p.ID)
		}
	}

	feed, err := f.posts.Feed(ctx, domain.Anonymous(), ports.FeedInput{OrderBy: domain.SortAsc})
	if err != nil || len(feed) != 2 {
		t.Fatalf("Feed returned %d posts, %v", len(feed), err)
	}
	checkAuthor(feed[0], "alice")
	checkAuthor(feed[1], "bob")

	got, err := f.posts.PostByID(ctx, domain.Anonymous(), theirs.ID)
	if err != nil {
		t.Fatalf("PostByID returned error: %v", err)
	}
	checkAuthor(got, "bob")

	drafts, err := f.posts.DraftsByUser(ctx, alice, ports.UserRef{ID: alice.UserID})
	if err != nil || len(drafts) != 1 || drafts[0].ID != draft.ID {
		t.Fatalf("DraftsByUser returned %+v, %v", drafts, err)
	}
	checkAuthor(drafts[0], "alice")
}
