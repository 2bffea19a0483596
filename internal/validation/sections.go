package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/editorial-cms-api/internal/models"
)

// Section validation messages. These are surfaced to API consumers
// verbatim, so treat them as part of the contract.
var (
	ErrHeroImageRequired  = errors.New("Hero image must be an absolute URL")
	ErrHeroTitleRequired  = errors.New("Hero title is required")
	ErrHeroCTAInvalid     = errors.New("Hero call-to-action requires a label and an absolute URL")
	ErrBreadcrumbEmpty    = errors.New("Breadcrumb must have at least one item")
	ErrBreadcrumbItem     = errors.New("Breadcrumb items require a label and href")
	ErrTextEmpty          = errors.New("Text section requires html or markdown content")
	ErrImageURLRequired   = errors.New("Image must have an absolute URL")
	ErrGalleryEmpty       = errors.New("Gallery must have at least one image")
	ErrGalleryImageURL    = errors.New("Gallery images must have an absolute URL")
	ErrGalleryLayout      = errors.New("Gallery layout must be one of: grid, masonry")
	ErrPopularPostsEmpty  = errors.New("Popular posts must reference at least one post")
	ErrPopularPostsLayout = errors.New("Popular posts layout must be one of: grid, list")
)

// ValidateSections checks an ordered section sequence against each
// variant's structural rule. It fails fast on the first invalid section
// and returns that rule's error untouched; callers surface it verbatim.
// Validation is pure and never touches storage.
func ValidateSections(sections []models.Section) error {
	for _, section := range sections {
		if err := validateSection(section); err != nil {
			return err
		}
	}
	return nil
}

// validateSection dispatches on the declared type. There is no default
// acceptance: unknown types are rejected explicitly.
func validateSection(section models.Section) error {
	switch section.Type {
	case models.SectionHero:
		return validateHero(section.Props)
	case models.SectionBreadcrumb:
		return validateBreadcrumb(section.Props)
	case models.SectionText:
		return validateText(section.Props)
	case models.SectionSingleImage:
		return validateSingleImage(section.Props)
	case models.SectionImageGallery:
		return validateImageGallery(section.Props)
	case models.SectionPopularPosts:
		return validatePopularPosts(section.Props)
	default:
		return fmt.Errorf("Unknown section type: %s", section.Type)
	}
}

func validateHero(raw json.RawMessage) error {
	var props models.HeroProps
	if err := json.Unmarshal(raw, &props); err != nil {
		return ErrHeroImageRequired
	}
	if !isAbsoluteURL(props.ImageURL) {
		return ErrHeroImageRequired
	}
	if props.Title == "" {
		return ErrHeroTitleRequired
	}
	if props.CTA != nil {
		if props.CTA.Label == "" || !isAbsoluteURL(props.CTA.URL) {
			return ErrHeroCTAInvalid
		}
	}
	return nil
}

func validateBreadcrumb(raw json.RawMessage) error {
	var props models.BreadcrumbProps
	if err := json.Unmarshal(raw, &props); err != nil {
		return ErrBreadcrumbEmpty
	}
	if len(props.Items) == 0 {
		return ErrBreadcrumbEmpty
	}
	for _, item := range props.Items {
		if item.Label == "" || item.Href == "" {
			return ErrBreadcrumbItem
		}
	}
	return nil
}

func validateText(raw json.RawMessage) error {
	var props models.TextProps
	if err := json.Unmarshal(raw, &props); err != nil {
		return ErrTextEmpty
	}
	if props.HTML == "" && props.Markdown == "" {
		return ErrTextEmpty
	}
	return nil
}

func validateSingleImage(raw json.RawMessage) error {
	var props models.SingleImageProps
	if err := json.Unmarshal(raw, &props); err != nil {
		return ErrImageURLRequired
	}
	if !isAbsoluteURL(props.URL) {
		return ErrImageURLRequired
	}
	return nil
}

func validateImageGallery(raw json.RawMessage) error {
	var props models.ImageGalleryProps
	if err := json.Unmarshal(raw, &props); err != nil {
		return ErrGalleryEmpty
	}
	if len(props.Images) == 0 {
		return ErrGalleryEmpty
	}
	for _, img := range props.Images {
		if !isAbsoluteURL(img.URL) {
			return ErrGalleryImageURL
		}
	}
	if props.Layout != "" && !models.GalleryLayouts[props.Layout] {
		return ErrGalleryLayout
	}
	return nil
}

func validatePopularPosts(raw json.RawMessage) error {
	var props models.PopularPostsProps
	if err := json.Unmarshal(raw, &props); err != nil {
		return ErrPopularPostsEmpty
	}
	if len(props.PostIDs) == 0 {
		return ErrPopularPostsEmpty
	}
	if props.Layout != "" && !models.PopularPostsLayouts[props.Layout] {
		return ErrPopularPostsLayout
	}
	return nil
}

// isAbsoluteURL reports whether s parses as a URL with a scheme and host
func isAbsoluteURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
