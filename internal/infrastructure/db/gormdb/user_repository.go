package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inkpost/blog-api/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, translate("find user", err)
	}
	return m.toDomain(), nil
}

// CreateWithProfile inserts the user and its empty profile in one
// transaction. The unique indexes on username and email settle concurrent
// signups: the loser gets domain.ErrConflict.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	um := userModel{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var pm profileModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&um).Error; err != nil {
			return err
		}
		pm = profileModel{UserID: um.ID, CreatedAt: now, UpdatedAt: now}
		return tx.Create(&pm).Error
	})
	if err != nil {
		return nil, translate("create user", err)
	}

	created := um.toDomain()
	created.Profile = pm.toDomain()
	return created, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, translate("list users", err)
	}
	out := make([]*domain.User, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}
