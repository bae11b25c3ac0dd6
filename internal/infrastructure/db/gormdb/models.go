package gormdb

import (
	"time"

	"github.com/inkpost/blog-api/internal/core/domain"
)

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type profileModel struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	UserID       int64 `gorm:"uniqueIndex;not null"`
	ProfilePhoto string
	ProfileBG    string `gorm:"column:profile_bg"`
	Website      string
	Location     string
	AboutMe      string
	Hiring       bool `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (profileModel) TableName() string { return "profiles" }

func newProfileModel(p *domain.Profile) profileModel {
	return profileModel{
		ID:           p.ID,
		UserID:       p.UserID,
		ProfilePhoto: p.ProfilePhoto,
		ProfileBG:    p.ProfileBG,
		Website:      p.Website,
		Location:     p.Location,
		AboutMe:      p.AboutMe,
		Hiring:       p.Hiring,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *profileModel) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:           m.ID,
		UserID:       m.UserID,
		ProfilePhoto: m.ProfilePhoto,
		ProfileBG:    m.ProfileBG,
		Website:      m.Website,
		Location:     m.Location,
		AboutMe:      m.AboutMe,
		Hiring:       m.Hiring,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type postModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	AuthorID    int64  `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	PostImage   string `gorm:"not null"`
	Published   bool   `gorm:"index;not null"`
	ViewCount   int64  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
}

func (postModel) TableName() string { return "posts" }

func (m *postModel) toDomain() *domain.Post {
	return &domain.Post{
		ID:          m.ID,
		AuthorID:    m.AuthorID,
		Title:       m.Title,
		Description: m.Description,
		PostImage:   m.PostImage,
		Published:   m.Published,
		ViewCount:   m.ViewCount,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func postsToDomain(models []postModel) []*domain.Post {
	out := make([]*domain.Post, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out
}
