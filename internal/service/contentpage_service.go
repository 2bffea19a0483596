package service

import (
	"context"
	"fmt"
	"time"

	"github.com/editorial-cms-api/internal/config"
	"github.com/editorial-cms-api/internal/models"
	"github.com/editorial-cms-api/internal/repository"
	"github.com/editorial-cms-api/internal/validation"
	"github.com/rs/zerolog"
)

// MsgContentPageNotFound is surfaced verbatim on admin and public reads
const MsgContentPageNotFound = "Content page not found"

// contentPageService is the concrete implementation of ContentPageService
type contentPageService struct {
	pages    repository.ContentPageRepository
	notifier RevalidateNotifier
	cfg      *config.RevalidateConfig
	log      zerolog.Logger
	now      func() time.Time
}

// newContentPageService creates a new ContentPageService
func newContentPageService(pages repository.ContentPageRepository, notifier RevalidateNotifier, cfg *config.RevalidateConfig, log zerolog.Logger) *contentPageService {
	return &contentPageService{
		pages:    pages,
		notifier: notifier,
		cfg:      cfg,
		log:      log.With().Str("service", "contentpage").Logger(),
		now:      time.Now,
	}
}

// Save replaces the draft document in full. Every submitted section is
// validated first; a single invalid section aborts the whole save so a
// prior valid draft is never partially overwritten. Section order is
// persisted exactly as submitted and the version is left untouched.
func (s *contentPageService) Save(ctx context.Context, input *models.ContentPageInput) (*models.ContentPage, error) {
	if err := validation.ValidateSections(input.Sections); err != nil {
		return nil, validationError(err.Error())
	}

	page := &models.ContentPage{
		Slug:     models.ContentPageSlug,
		Status:   models.StatusDraft,
		Sections: input.Sections,
		SEO:      input.SEO,
	}

	if err := s.pages.UpsertDraft(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to save content page: %w", err)
	}

	saved, err := s.pages.GetDraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload content page: %w", err)
	}

	s.log.Info().Int("sections", len(input.Sections)).Msg("Content page draft saved")
	return saved, nil
}

// Get retrieves the current draft for the admin read path
func (s *contentPageService) Get(ctx context.Context) (*models.ContentPage, error) {
	page, err := s.pages.GetDraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content page: %w", err)
	}
	if page == nil {
		return nil, notFoundError(MsgContentPageNotFound)
	}
	return page, nil
}

// Publish promotes the current draft to an immutable snapshot under the
// next version. After the snapshot commits, the revalidation notifier is
// given one attempt; its failure is logged and swallowed so publish
// success never depends on it.
func (s *contentPageService) Publish(ctx context.Context) (*models.ContentPage, error) {
	page, err := s.pages.PromoteDraft(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to publish content page: %w", err)
	}
	if page == nil {
		return nil, notFoundError(MsgContentPageNotFound)
	}

	s.log.Info().
		Int("version", page.Version).
		Time("published_at", *page.PublishedAt).
		Msg("Content page published")

	if err := s.notifier.Notify(ctx, s.cfg.DefaultPath); err != nil {
		s.log.Warn().Err(err).Str("path", s.cfg.DefaultPath).Msg("Revalidation failed")
	}

	return page, nil
}

// GetPublished retrieves the latest snapshot for the public read path.
// Draft edits are invisible here until the next publish.
func (s *contentPageService) GetPublished(ctx context.Context) (*models.ContentPageSnapshot, error) {
	snap, err := s.pages.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load published content page: %w", err)
	}
	if snap == nil {
		return nil, notFoundError(MsgContentPageNotFound)
	}
	return snap, nil
}
