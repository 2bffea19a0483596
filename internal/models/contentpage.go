package models

import (
	"time"
)

// ContentPageSlug identifies the singleton content page
const ContentPageSlug = "content-page"

// SEOMeta holds optional SEO metadata for the content page
type SEOMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ContentPage is the mutable editorial draft of the singleton landing
// page. The published snapshot lives in ContentPageSnapshot; draft edits
// never touch a snapshot except through an explicit publish.
type ContentPage struct {
	Slug        string     `json:"slug" db:"slug"`
	Status      string     `json:"status" db:"status"`
	Sections    []Section  `json:"sections" db:"-"` // Stored as JSON string in DB
	SEO         *SEOMeta   `json:"seo,omitempty" db:"-"`
	Version     int        `json:"version" db:"version"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ContentPageSnapshot is an immutable published copy of the content page,
// captured at publish time under a monotonically increasing version.
type ContentPageSnapshot struct {
	Slug        string    `json:"slug" db:"slug"`
	Status      string    `json:"status" db:"status"`
	Sections    []Section `json:"sections" db:"-"`
	SEO         *SEOMeta  `json:"seo,omitempty" db:"-"`
	Version     int       `json:"version" db:"version"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
}

// ContentPageInput is the full-replacement save payload
type ContentPageInput struct {
	Sections []Section `json:"sections"`
	SEO      *SEOMeta  `json:"seo,omitempty"`
}
