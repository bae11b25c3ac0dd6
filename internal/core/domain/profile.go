package domain

import "time"

// Profile holds the public, user-editable details of an account.
// Every user owns at most one profile.
type Profile struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ProfilePhoto string    `json:"profile_photo,omitempty"`
	ProfileBG    string    `json:"profile_bg,omitempty"`
	Website      string    `json:"website,omitempty"`
	Location     string    `json:"location,omitempty"`
	AboutMe      string    `json:"about_me,omitempty"`
	Hiring       bool      `json:"hiring"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// User is the owning account, set on writes that return the profile.
	User *User `json:"user,omitempty"`
}

// ProfileFields are the mutable profile attributes. Nil pointers leave the
// stored value untouched on update.
type ProfileFields struct {
	ProfilePhoto *string
	ProfileBG    *string
	Website      *string
	Location     *string
	AboutMe      *string
	Hiring       bool
}

// Apply copies the set fields onto p.
func (f ProfileFields) Apply(p *Profile) {
	if f.ProfilePhoto != nil {
		p.ProfilePhoto = *f.ProfilePhoto
	}
	if f.ProfileBG != nil {
		p.ProfileBG = *f.ProfileBG
	}
	if f.Website != nil {
		p.Website = *f.Website
	}
	if f.Location != nil {
		p.Location = *f.Location
	}
	if f.AboutMe != nil {
		p.AboutMe = *f.AboutMe
	}
	p.Hiring = f.Hiring
}
