package service

import (
	"context"

	"github.com/editorial-cms-api/internal/config"
	"github.com/editorial-cms-api/internal/models"
	"github.com/editorial-cms-api/internal/repository"
	"github.com/rs/zerolog"
)

// PostService defines the interface for post lifecycle operations
type PostService interface {
	Create(ctx context.Context, actor *models.User, input *models.PostInput) (*models.Post, error)
	Update(ctx context.Context, actor *models.User, id string, update *models.PostUpdate) (*models.Post, string, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPublished(ctx context.Context) ([]*models.Post, error)
}

// ContentPageService defines the interface for the singleton content
// page's draft/publish lifecycle
type ContentPageService interface {
	Save(ctx context.Context, input *models.ContentPageInput) (*models.ContentPage, error)
	Get(ctx context.Context) (*models.ContentPage, error)
	Publish(ctx context.Context) (*models.ContentPage, error)
	GetPublished(ctx context.Context) (*models.ContentPageSnapshot, error)
}

// PreviewService issues and verifies signed preview links
type PreviewService interface {
	PreviewURL(postID string) string
	Verify(postID string, timestamp int64, signature string) error
}

// RevalidateNotifier signals an external cache to refresh a path after a
// publish. A single attempt, no retries; callers log the outcome and
// never propagate it.
type RevalidateNotifier interface {
	Notify(ctx context.Context, path string) error
}

// Services holds all service interfaces
type Services struct {
	Post        PostService
	ContentPage ContentPageService
	Preview     PreviewService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	notifier := newRevalidateNotifier(&cfg.Revalidate, log)

	return &Services{
		Post:        newPostService(repos.Post, log),
		ContentPage: newContentPageService(repos.ContentPage, notifier, &cfg.Revalidate, log),
		Preview:     newPreviewService(&cfg.Preview),
	}
}
