package gormdb

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/inkpost/blog-api/internal/core/domain"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	m := postModel{
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Description: p.Description,
		PostImage:   p.PostImage,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, translate("create post", err)
	}
	return m.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	var m postModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate("find post", err)
	}
	return m.toDomain(), nil
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Feed returns published posts ordered by update time, id breaking ties.
// Search is a case-insensitive substring match.
func (r *PostRepository) Feed(ctx context.Context, f domain.FeedFilter) ([]*domain.Post, error) {
	q := r.db.WithContext(ctx).Model(&postModel{}).Where("published = ?", true)
	if f.Search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}

	dir := "desc"
	if f.Order == domain.SortAsc {
		dir = "asc"
	}
	q = q.Order("updated_at " + dir).Order("id " + dir)

	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}
	if f.Take > 0 {
		q = q.Limit(f.Take)
	}

	var models []postModel
	if err := q.Find(&models).Error; err != nil {
		return nil, translate("feed", err)
	}
	return postsToDomain(models), nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, published *bool) ([]*domain.Post, error) {
	q := r.db.WithContext(ctx).Where("author_id = ?", authorID)
	if published != nil {
		q = q.Where("published = ?", *published)
	}

	var models []postModel
	if err := q.Order("id asc").Find(&models).Error; err != nil {
		return nil, translate("list posts", err)
	}
	return postsToDomain(models), nil
}

// TogglePublished negates the flag in SQL so concurrent toggles do not
// overwrite each other.
func (r *PostRepository) TogglePublished(ctx context.Context, id int64) (*domain.Post, error) {
	return r.update(ctx, "toggle published", id, map[string]any{
		"published":  gorm.Expr("NOT published"),
		"updated_at": time.Now().UTC(),
	})
}

// IncrementViews bumps the counter in SQL so concurrent views are not lost.
// A view is not an edit, so updated_at is left alone.
func (r *PostRepository) IncrementViews(ctx context.Context, id int64) (*domain.Post, error) {
	return r.update(ctx, "increment views", id, map[string]any{
		"view_count": gorm.Expr("view_count + ?", 1),
	})
}

func (r *PostRepository) update(ctx context.Context, op string, id int64, columns map[string]any) (*domain.Post, error) {
	var m postModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&postModel{}).Where("id = ?", id).UpdateColumns(columns)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&m, id).Error
	})
	if err != nil {
		return nil, translate(op, err)
	}
	return m.toDomain(), nil
}

// Delete removes the post and returns it as it was.
func (r *PostRepository) Delete(ctx context.Context, id int64) (*domain.Post, error) {
	var m postModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		return tx.Delete(&postModel{}, id).Error
	})
	if err != nil {
		return nil, translate("delete post", err)
	}
	return m.toDomain(), nil
}
