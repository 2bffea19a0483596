package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/editorial-cms-api/internal/database"
	"github.com/editorial-cms-api/internal/models"
)

// contentPageRepo is the concrete implementation of ContentPageRepository
type contentPageRepo struct {
	db *database.DB
}

// NewContentPageRepo creates a new content page repository
func NewContentPageRepo(db *database.DB) ContentPageRepository {
	return &contentPageRepo{db: db}
}

// GetDraft retrieves the singleton draft row
func (r *contentPageRepo) GetDraft(ctx context.Context) (*models.ContentPage, error) {
	query := `
		SELECT slug, status, sections, seo, version, published_at, created_at, updated_at
		FROM content_pages WHERE slug = $1
	`

	var page models.ContentPage
	var sectionsJSON, seoJSON []byte
	var publishedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, models.ContentPageSlug).Scan(
		&page.Slug, &page.Status, &sectionsJSON, &seoJSON,
		&page.Version, &publishedAt, &page.CreatedAt, &page.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sectionsJSON, &page.Sections); err != nil {
		return nil, err
	}
	if len(seoJSON) > 0 {
		if err := json.Unmarshal(seoJSON, &page.SEO); err != nil {
			return nil, err
		}
	}
	if publishedAt.Valid {
		page.PublishedAt = &publishedAt.Time
	}

	return &page, nil
}

// UpsertDraft writes the full draft document under the fixed slug,
// leaving the version untouched. The write is all-or-nothing; a failed
// save never leaves a partial section sequence behind.
func (r *contentPageRepo) UpsertDraft(ctx context.Context, page *models.ContentPage) error {
	sectionsJSON, err := json.Marshal(page.Sections)
	if err != nil {
		return err
	}
	if page.Sections == nil {
		sectionsJSON = []byte("[]")
	}
	var seoJSON []byte
	if page.SEO != nil {
		seoJSON, err = json.Marshal(page.SEO)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO content_pages (slug, status, sections, seo, version, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, NULL, $5, $5)
		ON CONFLICT (slug) DO UPDATE
		SET status = EXCLUDED.status,
		    sections = EXCLUDED.sections,
		    seo = EXCLUDED.seo,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		models.ContentPageSlug, page.Status, sectionsJSON, seoJSON, time.Now(),
	)
	return err
}

// PromoteDraft publishes the current draft in a single transaction: the
// draft row becomes status=published with version+1 and a fresh
// published_at, and a frozen snapshot of its sections and SEO is appended
// under the new version. Returns nil if no draft exists.
func (r *contentPageRepo) PromoteDraft(ctx context.Context, publishedAt time.Time) (*models.ContentPage, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var page models.ContentPage
	var sectionsJSON, seoJSON []byte
	var prevPublishedAt sql.NullTime

	err = tx.QueryRowContext(ctx, `
		SELECT slug, status, sections, seo, version, published_at, created_at, updated_at
		FROM content_pages WHERE slug = $1
	`, models.ContentPageSlug).Scan(
		&page.Slug, &page.Status, &sectionsJSON, &seoJSON,
		&page.Version, &prevPublishedAt, &page.CreatedAt, &page.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	page.Status = models.StatusPublished
	page.Version = page.Version + 1
	page.PublishedAt = &publishedAt

	_, err = tx.ExecContext(ctx, `
		UPDATE content_pages
		SET status = $2, version = $3, published_at = $4, updated_at = $4
		WHERE slug = $1
	`, models.ContentPageSlug, page.Status, page.Version, publishedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO content_page_snapshots (slug, version, sections, seo, published_at)
		VALUES ($1, $2, $3, $4, $5)
	`, models.ContentPageSlug, page.Version, sectionsJSON, seoJSON, publishedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sectionsJSON, &page.Sections); err != nil {
		return nil, err
	}
	if len(seoJSON) > 0 {
		if err := json.Unmarshal(seoJSON, &page.SEO); err != nil {
			return nil, err
		}
	}

	return &page, nil
}

// GetLatestSnapshot retrieves the most recently published snapshot. This
// is the only read path the public endpoint may use; it never observes
// the draft row.
func (r *contentPageRepo) GetLatestSnapshot(ctx context.Context) (*models.ContentPageSnapshot, error) {
	query := `
		SELECT slug, version, sections, seo, published_at
		FROM content_page_snapshots
		WHERE slug = $1
		ORDER BY version DESC
		LIMIT 1
	`

	var snap models.ContentPageSnapshot
	var sectionsJSON, seoJSON []byte

	err := r.db.QueryRowContext(ctx, query, models.ContentPageSlug).Scan(
		&snap.Slug, &snap.Version, &sectionsJSON, &seoJSON, &snap.PublishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snap.Status = models.StatusPublished
	if err := json.Unmarshal(sectionsJSON, &snap.Sections); err != nil {
		return nil, err
	}
	if len(seoJSON) > 0 {
		if err := json.Unmarshal(seoJSON, &snap.SEO); err != nil {
			return nil, err
		}
	}

	return &snap, nil
}
