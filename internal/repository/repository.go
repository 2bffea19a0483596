package repository

import (
	"context"
	"time"

	"github.com/editorial-cms-api/internal/database"
	"github.com/editorial-cms-api/internal/models"
)

// UserRepository defines the interface for actor lookups
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
	List(ctx context.Context) ([]*models.Post, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Post, error)
}

// ContentPageRepository defines the interface for the singleton content
// page. The draft row and the snapshot rows share one identity; only
// PromoteDraft may read the draft and write a snapshot.
type ContentPageRepository interface {
	GetDraft(ctx context.Context) (*models.ContentPage, error)
	UpsertDraft(ctx context.Context, page *models.ContentPage) error
	PromoteDraft(ctx context.Context, publishedAt time.Time) (*models.ContentPage, error)
	GetLatestSnapshot(ctx context.Context) (*models.ContentPageSnapshot, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User        UserRepository
	Post        PostRepository
	ContentPage ContentPageRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepo(db),
		Post:        NewPostRepo(db),
		ContentPage: NewContentPageRepo(db),
	}
}
