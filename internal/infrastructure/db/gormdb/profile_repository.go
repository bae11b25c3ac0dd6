package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inkpost/blog-api/internal/core/domain"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	m := newProfileModel(p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, translate("create profile", err)
	}
	return m.toDomain(), nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var m profileModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate("find profile", err)
	}
	return m.toDomain(), nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var m profileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translate("find profile", err)
	}
	return m.toDomain(), nil
}

func (r *ProfileRepository) Update(ctx context.Context, id int64, fields domain.ProfileFields) (*domain.Profile, error) {
	var updated profileModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m profileModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		p := m.toDomain()
		fields.Apply(p)
		p.UpdatedAt = time.Now().UTC()

		updated = newProfileModel(p)
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, translate("update profile", err)
	}
	return updated.toDomain(), nil
}
