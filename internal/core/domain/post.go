package domain

import "time"

// Post is a blog entry. New posts start as unpublished drafts.
type Post struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostImage   string    `json:"post_image"`
	Published   bool      `json:"published"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Author is set on reads that return it.
	Author *User `json:"author,omitempty"`
}

// SortOrder is the direction used when ordering the feed by update time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FeedFilter selects published posts for the public feed.
type FeedFilter struct {
	Search string // optional: substring match on title or description
	Skip   int
	Take   int // 0 = no limit
	Order  SortOrder
}
