package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpost/blog-api/internal/core/domain"
)

type ProfileRepository struct {
	col *mongo.Collection
	ids *counters
}

func NewProfileRepository(db *mongo.Database, ids *counters) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles), ids: ids}
}

type profileDoc struct {
	ID           int64     `bson:"_id"`
	UserID       int64     `bson:"user_id"`
	ProfilePhoto string    `bson:"profile_photo,omitempty"`
	ProfileBG    string    `bson:"profile_bg,omitempty"`
	Website      string    `bson:"website,omitempty"`
	Location     string    `bson:"location,omitempty"`
	AboutMe      string    `bson:"about_me,omitempty"`
	Hiring       bool      `bson:"hiring"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d *profileDoc) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:           d.ID,
		UserID:       d.UserID,
		ProfilePhoto: d.ProfilePhoto,
		ProfileBG:    d.ProfileBG,
		Website:      d.Website,
		Location:     d.Location,
		AboutMe:      d.AboutMe,
		Hiring:       d.Hiring,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx, collectionProfiles)
	if err != nil {
		return nil, err
	}
	d := profileDoc{
		ID:           id,
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
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, translate("create profile", err)
	}
	return d.toDomain(), nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id int64) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d profileDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, translate("find profile", err)
	}
	return d.toDomain(), nil
}

// Update sets only the provided fields.
func (r *ProfileRepository) Update(ctx context.Context, id int64, fields domain.ProfileFields) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"hiring": fields.Hiring, "updated_at": time.Now().UTC()}
	for key, value := range map[string]*string{
		"profile_photo": fields.ProfilePhoto,
		"profile_bg":    fields.ProfileBG,
		"website":       fields.Website,
		"location":      fields.Location,
		"about_me":      fields.AboutMe,
	} {
		if value != nil {
			set[key] = *value
		}
	}

	var d profileDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return nil, translate("update profile", err)
	}
	return d.toDomain(), nil
}
