package models

import (
	"time"
)

// Post statuses
const (
	StatusDraft     = "draft"
	StatusReview    = "review"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidPostStatuses defines allowed post statuses
var ValidPostStatuses = map[string]bool{
	StatusDraft:     true,
	StatusReview:    true,
	StatusScheduled: true,
	StatusPublished: true,
	StatusArchived:  true,
}

// Post represents an editorial post
type Post struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Body        string     `json:"body" db:"body"`
	Excerpt     string     `json:"excerpt,omitempty" db:"excerpt"`
	Tags        []string   `json:"tags" db:"-"` // Stored as JSON string in DB
	CategoryIDs []string   `json:"category_ids" db:"-"`
	Status      string     `json:"status" db:"status"`
	AuthorID    string     `json:"author_id" db:"author_id"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// PostInput is the create payload
type PostInput struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	CategoryIDs []string `json:"category_ids"`
}

// PostUpdate is the partial update payload. Nil fields are left untouched;
// a non-nil Status triggers the publication state machine.
type PostUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	CategoryIDs *[]string  `json:"category_ids,omitempty"`
	Status      *string    `json:"status,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}
