package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

const (
	collectionUsers    = "users"
	collectionProfiles = "profiles"
	collectionPosts    = "posts"
	collectionCounters = "counters"
)

// Store is the document ports.Store. Ids are numeric and drawn from the
// counters collection so they look the same as on the SQL backends.
type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	users    *UserRepository
	posts    *PostRepository
	profiles *ProfileRepository
}

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	ids := &counters{col: db.Collection(collectionCounters)}
	profiles := NewProfileRepository(db, ids)
	return &Store{
		client:   client,
		db:       db,
		users:    NewUserRepository(db, ids, profiles),
		posts:    NewPostRepository(db, ids),
		profiles: profiles,
	}
}

func (s *Store) Users() ports.UserRepository       { return s.users }
func (s *Store) Posts() ports.PostRepository       { return s.posts }
func (s *Store) Profiles() ports.ProfileRepository { return s.profiles }

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes that settle concurrent signups
// and the lookup indexes used by the feed.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		collectionProfiles: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		collectionPosts: {
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "published", Value: 1}, {Key: "updated_at", Value: -1}}},
		},
	}

	for name, indexes := range specs {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}

type counters struct {
	col *mongo.Collection
}

// next atomically increments and returns the sequence for name.
func (c *counters) next(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := c.col.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq, nil
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
