package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpost/blog-api/internal/core/domain"
)

type PostRepository struct {
	col *mongo.Collection
	ids *counters
}

func NewPostRepository(db *mongo.Database, ids *counters) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts), ids: ids}
}

type postDoc struct {
	ID          int64     `bson:"_id"`
	AuthorID    int64     `bson:"author_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	PostImage   string    `bson:"post_image"`
	Published   bool      `bson:"published"`
	ViewCount   int64     `bson:"view_count"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d *postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:          d.ID,
		AuthorID:    d.AuthorID,
		Title:       d.Title,
		Description: d.Description,
		PostImage:   d.PostImage,
		Published:   d.Published,
		ViewCount:   d.ViewCount,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx, collectionPosts)
	if err != nil {
		return nil, err
	}
	d := postDoc{
		ID:          id,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Description: p.Description,
		PostImage:   p.PostImage,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, translate("create post", err)
	}
	return d.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate("find post", err)
	}
	return d.toDomain(), nil
}

func (r *PostRepository) Feed(ctx context.Context, f domain.FeedFilter) ([]*domain.Post, error) {
	filter := bson.M{"published": true}
	if f.Search != "" {
		// Case-insensitive literal substring, like the SQL backends.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	dir := -1
	if f.Order == domain.SortAsc {
		dir = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: dir}, {Key: "_id", Value: dir}})
	if f.Skip > 0 {
		opts.SetSkip(int64(f.Skip))
	}
	if f.Take > 0 {
		opts.SetLimit(int64(f.Take))
	}
	return r.find(ctx, "feed", filter, opts)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, published *bool) ([]*domain.Post, error) {
	filter := bson.M{"author_id": authorID}
	if published != nil {
		filter["published"] = *published
	}
	return r.find(ctx, "list posts", filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *PostRepository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(op, err)
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(op, err)
	}

	out := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// TogglePublished negates the flag with an update pipeline, so the read and
// the write happen in one server-side step.
func (r *PostRepository) TogglePublished(ctx context.Context, id int64) (*domain.Post, error) {
	return r.update(ctx, "toggle published", id, bson.A{
		bson.M{"$set": bson.M{
			"published":  bson.M{"$not": bson.A{"$published"}},
			"updated_at": time.Now().UTC(),
		}},
	})
}

// IncrementViews uses $inc so concurrent views are not lost.
func (r *PostRepository) IncrementViews(ctx context.Context, id int64) (*domain.Post, error) {
	return r.update(ctx, "increment views", id, bson.M{"$inc": bson.M{"view_count": 1}})
}

// update accepts an update document or an update pipeline.
func (r *PostRepository) update(ctx context.Context, op string, id int64, update any) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d postDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return nil, translate(op, err)
	}
	return d.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d postDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate("delete post", err)
	}
	return d.toDomain(), nil
}
