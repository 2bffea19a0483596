package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/editorial-cms-api/internal/auth"
	"github.com/editorial-cms-api/internal/models"
	"github.com/editorial-cms-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Post state machine messages. Surfaced verbatim.
const (
	MsgPostNotFound  = "Post not found"
	MsgTitleRequired = "Title is required"
	MsgSlugExists    = "Slug already exists"
	MsgBodyRequired  = "Body required for publishing"
	MsgTagsRequired  = "Select at least one"
	MsgInvalidDate   = "Invalid date"
	MsgInvalidStatus = "Invalid status"
	MsgNotPostAuthor = "Not allowed - you can only edit your own posts"
	MsgDraftSaved    = "Draft saved"
	MsgSentForReview = "Sent for review"
	MsgScheduled     = "Scheduled"
	MsgPublished     = "Published"
	MsgPostArchived  = "Post archived"
	MsgPostUpdated   = "Post updated"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// postService is the concrete implementation of PostService
type postService struct {
	posts repository.PostRepository
	log   zerolog.Logger
	now   func() time.Time
}

// newPostService creates a new PostService
func newPostService(posts repository.PostRepository, log zerolog.Logger) *postService {
	return &postService{
		posts: posts,
		log:   log.With().Str("service", "post").Logger(),
		now:   time.Now,
	}
}

// Create saves a new draft post. The route layer has already checked
// post:create; the only business rules here are the title requirement
// and slug uniqueness.
func (s *postService) Create(ctx context.Context, actor *models.User, input *models.PostInput) (*models.Post, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, validationError(MsgTitleRequired)
	}

	slug := Slugify(input.Title)
	exists, err := s.posts.SlugExists(ctx, slug, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return nil, conflictError(MsgSlugExists)
	}

	post := &models.Post{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Slug:        slug,
		Body:        input.Body,
		Excerpt:     input.Excerpt,
		Tags:        input.Tags,
		CategoryIDs: input.CategoryIDs,
		Status:      models.StatusDraft,
		AuthorID:    actor.ID,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("slug", post.Slug).Msg("Draft created")
	return post, nil
}

// Update applies a partial edit and, when the payload carries a status,
// runs the publication state machine over the updated fields. The route
// layer has already enforced the elevated permission for the target
// status; the checks here are business rules, an independent gate.
func (s *postService) Update(ctx context.Context, actor *models.User, id string, update *models.PostUpdate) (*models.Post, string, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, "", notFoundError(MsgPostNotFound)
	}

	// Contributors may only touch their own posts; editors and admins
	// hold the broader edit permission.
	if post.AuthorID != actor.ID && !auth.BroadEdit(actor.Role) {
		return nil, "", forbiddenError(MsgNotPostAuthor)
	}

	if update.Title != nil && *update.Title != post.Title {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, "", validationError(MsgTitleRequired)
		}
		post.Title = *update.Title
		slug, err := s.uniqueSlug(ctx, Slugify(post.Title), post.ID)
		if err != nil {
			return nil, "", err
		}
		post.Slug = slug
	}
	if update.Body != nil {
		post.Body = *update.Body
	}
	if update.Excerpt != nil {
		post.Excerpt = *update.Excerpt
	}
	if update.Tags != nil {
		post.Tags = *update.Tags
	}
	if update.CategoryIDs != nil {
		post.CategoryIDs = *update.CategoryIDs
	}
	if update.ScheduledAt != nil {
		post.ScheduledAt = update.ScheduledAt
	}

	message := MsgPostUpdated
	if update.Status != nil {
		msg, err := s.transition(post, *update.Status)
		if err != nil {
			return nil, "", err
		}
		message = msg
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, "", fmt.Errorf("failed to update post: %w", err)
	}

	s.log.Info().
		Str("post_id", post.ID).
		Str("status", post.Status).
		Msg("Post updated")
	return post, message, nil
}

// transition applies the publication preconditions for the target status
// and mutates the post accordingly. It owns the exact failure messages.
func (s *postService) transition(post *models.Post, target string) (string, error) {
	if !models.ValidPostStatuses[target] {
		return "", validationError(MsgInvalidStatus)
	}

	switch target {
	case models.StatusReview, models.StatusScheduled, models.StatusPublished:
		if strings.TrimSpace(post.Body) == "" {
			return "", validationError(MsgBodyRequired)
		}
		if len(post.Tags) == 0 {
			return "", validationError(MsgTagsRequired)
		}
	}

	if target == models.StatusScheduled {
		// Missing and past-dated schedules are reported identically.
		if post.ScheduledAt == nil || !post.ScheduledAt.After(s.now()) {
			return "", validationError(MsgInvalidDate)
		}
	}

	if target == models.StatusPublished && post.PublishedAt == nil {
		// First publish stamps the time; re-publishing keeps the
		// original timestamp.
		now := s.now()
		post.PublishedAt = &now
	}

	post.Status = target

	switch target {
	case models.StatusReview:
		return MsgSentForReview, nil
	case models.StatusScheduled:
		return MsgScheduled, nil
	case models.StatusPublished:
		return MsgPublished, nil
	case models.StatusArchived:
		return MsgPostArchived, nil
	default:
		return MsgPostUpdated, nil
	}
}

// Delete removes a post permanently
func (s *postService) Delete(ctx context.Context, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return notFoundError(MsgPostNotFound)
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	s.log.Info().Str("post_id", id).Msg("Post deleted")
	return nil
}

// Get retrieves a post by ID regardless of status
func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, notFoundError(MsgPostNotFound)
	}
	return post, nil
}

// List retrieves all posts for the admin listing
func (s *postService) List(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// GetPublishedBySlug retrieves a post for the public read path. Drafts,
// reviews and scheduled posts are indistinguishable from nonexistent.
func (s *postService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil || post.Status != models.StatusPublished {
		return nil, notFoundError(MsgPostNotFound)
	}
	return post, nil
}

// ListPublished retrieves published posts for the public listing
func (s *postService) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return s.posts.ListByStatus(ctx, models.StatusPublished)
}

// uniqueSlug resolves a slug collision by appending a numeric suffix
// (base-2, base-3, ...) instead of rejecting the update.
func (s *postService) uniqueSlug(ctx context.Context, base string, excludeID string) (string, error) {
	exists, err := s.posts.SlugExists(ctx, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if !exists {
		return base, nil
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		exists, err := s.posts.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
}

// Slugify converts a title to a URL-safe kebab-case slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
