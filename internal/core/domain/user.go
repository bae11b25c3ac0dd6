package domain

import "time"

// User models an account that can sign in and author posts.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Profile and Posts are populated only by reads that ask for them.
	Profile *Profile `json:"profile,omitempty"`
	Posts   []Post   `json:"posts,omitempty"`
}

