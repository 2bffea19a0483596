package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/editorial-cms-api/internal/models"
)

func props(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal props: %v", err)
	}
	return data
}

func TestValidateSections(t *testing.T) {
	tests := []struct {
		name     string
		sections []models.Section
		wantErr  string
	}{
		{
			name:     "empty sequence is valid",
			sections: nil,
		},
		{
			name: "valid mixed sequence",
			sections: []models.Section{
				{Type: models.SectionHero, Props: props(t, models.HeroProps{
					ImageURL: "https://cdn.example.com/hero.jpg",
					Title:    "Welcome",
					Subtitle: "Read our stories",
					CTA:      &models.CallToAction{Label: "Read more", URL: "https://example.com/posts"},
				})},
				{Type: models.SectionBreadcrumb, Props: props(t, models.BreadcrumbProps{
					Items: []models.BreadcrumbItem{{Label: "Home", Href: "/"}},
				})},
				{Type: models.SectionText, Props: props(t, models.TextProps{Markdown: "# Hello"})},
				{Type: models.SectionSingleImage, Props: props(t, models.SingleImageProps{
					URL: "https://cdn.example.com/img.png", Alt: "An image",
				})},
				{Type: models.SectionImageGallery, Props: props(t, models.ImageGalleryProps{
					Images: []models.GalleryImage{{URL: "https://cdn.example.com/1.png"}},
					Layout: "masonry",
				})},
				{Type: models.SectionPopularPosts, Props: props(t, models.PopularPostsProps{
					PostIDs: []string{"a", "b"}, Layout: "list",
				})},
			},
		},
		{
			name: "unknown type rejected",
			sections: []models.Section{
				{Type: "carousel", Props: json.RawMessage(`{}`)},
			},
			wantErr: "Unknown section type: carousel",
		},
		{
			name: "hero missing image",
			sections: []models.Section{
				{Type: models.SectionHero, Props: props(t, models.HeroProps{Title: "Welcome"})},
			},
			wantErr: "Hero image must be an absolute URL",
		},
		{
			name: "hero relative image url",
			sections: []models.Section{
				{Type: models.SectionHero, Props: props(t, models.HeroProps{
					ImageURL: "/images/hero.jpg", Title: "Welcome",
				})},
			},
			wantErr: "Hero image must be an absolute URL",
		},
		{
			name: "hero missing title",
			sections: []models.Section{
				{Type: models.SectionHero, Props: props(t, models.HeroProps{
					ImageURL: "https://cdn.example.com/hero.jpg",
				})},
			},
			wantErr: "Hero title is required",
		},
		{
			name: "hero cta without label",
			sections: []models.Section{
				{Type: models.SectionHero, Props: props(t, models.HeroProps{
					ImageURL: "https://cdn.example.com/hero.jpg",
					Title:    "Welcome",
					CTA:      &models.CallToAction{URL: "https://example.com"},
				})},
			},
			wantErr: "Hero call-to-action requires a label and an absolute URL",
		},
		{
			name: "breadcrumb empty",
			sections: []models.Section{
				{Type: models.SectionBreadcrumb, Props: props(t, models.BreadcrumbProps{})},
			},
			wantErr: "Breadcrumb must have at least one item",
		},
		{
			name: "breadcrumb item missing href",
			sections: []models.Section{
				{Type: models.SectionBreadcrumb, Props: props(t, models.BreadcrumbProps{
					Items: []models.BreadcrumbItem{{Label: "Home"}},
				})},
			},
			wantErr: "Breadcrumb items require a label and href",
		},
		{
			name: "text with neither html nor markdown",
			sections: []models.Section{
				{Type: models.SectionText, Props: props(t, models.TextProps{})},
			},
			wantErr: "Text section requires html or markdown content",
		},
		{
			name: "single image missing url",
			sections: []models.Section{
				{Type: models.SectionSingleImage, Props: props(t, models.SingleImageProps{Caption: "cap"})},
			},
			wantErr: "Image must have an absolute URL",
		},
		{
			name: "gallery with zero images",
			sections: []models.Section{
				{Type: models.SectionImageGallery, Props: props(t, models.ImageGalleryProps{})},
			},
			wantErr: "Gallery must have at least one image",
		},
		{
			name: "gallery image relative url",
			sections: []models.Section{
				{Type: models.SectionImageGallery, Props: props(t, models.ImageGalleryProps{
					Images: []models.GalleryImage{{URL: "1.png"}},
				})},
			},
			wantErr: "Gallery images must have an absolute URL",
		},
		{
			name: "gallery invalid layout",
			sections: []models.Section{
				{Type: models.SectionImageGallery, Props: props(t, models.ImageGalleryProps{
					Images: []models.GalleryImage{{URL: "https://cdn.example.com/1.png"}},
					Layout: "carousel",
				})},
			},
			wantErr: "Gallery layout must be one of: grid, masonry",
		},
		{
			name: "popular posts empty",
			sections: []models.Section{
				{Type: models.SectionPopularPosts, Props: props(t, models.PopularPostsProps{})},
			},
			wantErr: "Popular posts must reference at least one post",
		},
		{
			name: "popular posts invalid layout",
			sections: []models.Section{
				{Type: models.SectionPopularPosts, Props: props(t, models.PopularPostsProps{
					PostIDs: []string{"a"}, Layout: "carousel",
				})},
			},
			wantErr: "Popular posts layout must be one of: grid, list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSections(tt.sections)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %q", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

// Validation must stop at the first invalid section, in array order.
func TestValidateSectionsFailsFast(t *testing.T) {
	sections := []models.Section{
		{Type: models.SectionText, Props: props(t, models.TextProps{HTML: "<p>ok</p>"})},
		{Type: models.SectionImageGallery, Props: props(t, models.ImageGalleryProps{})},
		{Type: models.SectionHero, Props: props(t, models.HeroProps{})},
	}

	err := ValidateSections(sections)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Gallery must have at least one image" {
		t.Errorf("expected the gallery error first, got %q", err.Error())
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	valid := []string{"https://example.com/a.png", "http://cdn.example.com"}
	invalid := []string{"", "/relative/path", "example.com/no-scheme", "https://"}

	for _, u := range valid {
		if !isAbsoluteURL(u) {
			t.Errorf("expected %q to be absolute", u)
		}
	}
	for _, u := range invalid {
		if isAbsoluteURL(u) {
			t.Errorf("expected %q to be rejected", u)
		}
	}
}

// Malformed props payloads map onto the variant's base rule error
// rather than leaking a JSON parse error.
func TestValidateSectionsMalformedProps(t *testing.T) {
	err := ValidateSections([]models.Section{
		{Type: models.SectionImageGallery, Props: json.RawMessage(`"not an object"`)},
	})
	if err == nil || !strings.Contains(err.Error(), "Gallery") {
		t.Errorf("expected gallery error, got %v", err)
	}
}
