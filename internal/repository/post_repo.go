package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/editorial-cms-api/internal/database"
	"github.com/editorial-cms-api/internal/models"
	"github.com/google/uuid"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

const postColumns = "id, title, slug, body, excerpt, tags, category_ids, status, author_id, published_at, scheduled_at, created_at, updated_at"

// Create inserts a new post
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	tagsJSON, _ := json.Marshal(post.Tags)
	categoriesJSON, _ := json.Marshal(post.CategoryIDs)
	if post.Tags == nil {
		tagsJSON = []byte("[]")
	}
	if post.CategoryIDs == nil {
		categoriesJSON = []byte("[]")
	}

	query := `
		INSERT INTO posts (id, title, slug, body, excerpt, tags, category_ids, status, author_id, published_at, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Body, post.Excerpt,
		tagsJSON, categoriesJSON, post.Status, post.AuthorID,
		post.PublishedAt, post.ScheduledAt, now, now,
	)
	return err
}

// Update replaces the mutable fields of an existing post
func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	tagsJSON, _ := json.Marshal(post.Tags)
	categoriesJSON, _ := json.Marshal(post.CategoryIDs)
	if post.Tags == nil {
		tagsJSON = []byte("[]")
	}
	if post.CategoryIDs == nil {
		categoriesJSON = []byte("[]")
	}

	query := `
		UPDATE posts
		SET title = $2, slug = $3, body = $4, excerpt = $5, tags = $6,
		    category_ids = $7, status = $8, published_at = $9,
		    scheduled_at = $10, updated_at = $11
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Body, post.Excerpt,
		tagsJSON, categoriesJSON, post.Status,
		post.PublishedAt, post.ScheduledAt, time.Now(),
	)
	return err
}

// Delete removes a post permanently
func (r *postRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

// GetByID retrieves a post by ID. A malformed id cannot match the UUID
// column and would fail at bind time, so it is treated as not-found
// without touching the database.
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
}

// GetBySlug retrieves a post by slug
func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, "SELECT "+postColumns+" FROM posts WHERE slug = $1", slug)
}

// SlugExists checks whether another post already holds the given slug.
// excludeID skips the post being updated so it can keep its own slug; an
// empty excludeID is omitted from the query entirely, since posts.id is
// a UUID column and an empty string does not bind against it.
func (r *postRepo) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	query, args := slugExistsQuery(slug, excludeID)
	var exists bool
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	return exists, err
}

func slugExistsQuery(slug, excludeID string) (string, []interface{}) {
	if excludeID == "" {
		return "SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)", []interface{}{slug}
	}
	return "SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)", []interface{}{slug, excludeID}
}

// List retrieves all posts, newest first
func (r *postRepo) List(ctx context.Context) ([]*models.Post, error) {
	return r.list(ctx, "SELECT "+postColumns+" FROM posts ORDER BY created_at DESC")
}

// ListByStatus retrieves posts with the given status, newest first
func (r *postRepo) ListByStatus(ctx context.Context, status string) ([]*models.Post, error) {
	return r.list(ctx, "SELECT "+postColumns+" FROM posts WHERE status = $1 ORDER BY published_at DESC NULLS LAST, created_at DESC", status)
}

func (r *postRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepo) getOne(ctx context.Context, query string, arg string) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, query, arg).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// scanPost reads one post row from either a *sql.Row or *sql.Rows scan
func scanPost(scan func(dest ...interface{}) error) (*models.Post, error) {
	var post models.Post
	var tagsJSON, categoriesJSON []byte
	var publishedAt, scheduledAt sql.NullTime

	err := scan(
		&post.ID, &post.Title, &post.Slug, &post.Body, &post.Excerpt,
		&tagsJSON, &categoriesJSON, &post.Status, &post.AuthorID,
		&publishedAt, &scheduledAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(categoriesJSON, &post.CategoryIDs); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}
	if scheduledAt.Valid {
		post.ScheduledAt = &scheduledAt.Time
	}

	return &post, nil
}
