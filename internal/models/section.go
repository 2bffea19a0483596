package models

import (
	"encoding/json"
)

// SectionType discriminates the content-section variants
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionBreadcrumb   SectionType = "breadcrumb"
	SectionText         SectionType = "text"
	SectionSingleImage  SectionType = "singleImage"
	SectionImageGallery SectionType = "imageGallery"
	SectionPopularPosts SectionType = "popularPosts"
)

// Section is one typed block of the content-page builder. Props holds the
// variant-specific payload; decode it with the matching *Props struct for
// the declared Type.
type Section struct {
	Type  SectionType     `json:"type"`
	Props json.RawMessage `json:"props"`
}

// CallToAction is an optional hero button
type CallToAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// HeroProps is the payload for hero sections
type HeroProps struct {
	ImageURL string        `json:"imageUrl"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Overlay  bool          `json:"overlay,omitempty"`
	CTA      *CallToAction `json:"cta,omitempty"`
}

// BreadcrumbItem is a single link in a breadcrumb trail
type BreadcrumbItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// BreadcrumbProps is the payload for breadcrumb sections
type BreadcrumbProps struct {
	Items []BreadcrumbItem `json:"items"`
}

// TextProps is the payload for rich-text sections. At least one of HTML
// or Markdown must be non-empty.
type TextProps struct {
	HTML     string `json:"html,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// SingleImageProps is the payload for single-image sections
type SingleImageProps struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// GalleryImage is one image in a gallery
type GalleryImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// ImageGalleryProps is the payload for gallery sections
type ImageGalleryProps struct {
	Images []GalleryImage `json:"images"`
	Layout string         `json:"layout,omitempty"` // grid or masonry
}

// PopularPostsProps is the payload for curated post-list sections
type PopularPostsProps struct {
	PostIDs []string `json:"postIds"`
	Layout  string   `json:"layout,omitempty"` // grid or list
}

// GalleryLayouts defines allowed image gallery layouts
var GalleryLayouts = map[string]bool{
	"grid":    true,
	"masonry": true,
}

// PopularPostsLayouts defines allowed popular-posts layouts
var PopularPostsLayouts = map[string]bool{
	"grid": true,
	"list": true,
}
