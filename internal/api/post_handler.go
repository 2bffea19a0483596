package api

import (
	"net/http"
	"strconv"

	"github.com/editorial-cms-api/internal/auth"
	"github.com/editorial-cms-api/internal/models"
	"github.com/editorial-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles post endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// Create handles POST /admin/posts
func (h *PostHandler) Create(c *gin.Context) {
	var input models.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), Actor(c), &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, service.MsgDraftSaved, post)
}

// List handles GET /admin/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", posts)
}

// Get handles GET /admin/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.services.Post.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", post)
}

// Update handles PATCH /admin/posts/:id. The elevated permission for the
// requested target status is enforced here, before the state machine
// sees the update; business-rule validation is a second, independent
// gate inside the service.
func (h *PostHandler) Update(c *gin.Context) {
	var update models.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	actor := Actor(c)
	if update.Status != nil {
		if action, required := transitionAction(*update.Status); required {
			if !auth.Can(actor.Role, action) {
				respondError(c, http.StatusForbidden, permissionDeniedMessage(action))
				return
			}
		}
	}

	post, message, err := h.services.Post.Update(c.Request.Context(), actor, c.Param("id"), &update)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, message, post)
}

// transitionAction maps a target status to the elevated action it needs
// beyond post:edit
func transitionAction(target string) (string, bool) {
	switch target {
	case models.StatusReview:
		return auth.ActionPostReview, true
	case models.StatusScheduled:
		return auth.ActionPostSchedule, true
	case models.StatusPublished:
		return auth.ActionPostPublish, true
	default:
		return "", false
	}
}

// Delete handles DELETE /admin/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.services.Post.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Post deleted", nil)
}

// Preview handles GET /admin/posts/:id/preview, issuing a signed link
// that grants unauthenticated preview of an unpublished post.
func (h *PostHandler) Preview(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.services.Post.Get(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"previewUrl": h.services.Preview.PreviewURL(id),
	})
}

// PublicGetBySlug handles GET /posts/:slug. Unpublished posts are
// indistinguishable from nonexistent ones here.
func (h *PostHandler) PublicGetBySlug(c *gin.Context) {
	post, err := h.services.Post.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", post)
}

// PublicList handles GET /posts
func (h *PostHandler) PublicList(c *gin.Context) {
	posts, err := h.services.Post.ListPublished(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", posts)
}

// PublicPreview handles GET /preview/:id. A valid signature substitutes
// for authentication; the post is returned regardless of status.
func (h *PostHandler) PublicPreview(c *gin.Context) {
	id := c.Param("id")

	ts, err := strconv.ParseInt(c.Query("t"), 10, 64)
	if err != nil {
		respondError(c, http.StatusUnauthorized, service.MsgInvalidPreviewToken)
		return
	}

	if err := h.services.Preview.Verify(id, ts, c.Query("h")); err != nil {
		respondServiceError(c, err)
		return
	}

	post, err := h.services.Post.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", post)
}
