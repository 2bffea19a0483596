package api

import (
	"net/http"

	"github.com/editorial-cms-api/internal/models"
	"github.com/editorial-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContentPageHandler handles content page endpoints
type ContentPageHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContentPageHandler creates a new ContentPageHandler
func NewContentPageHandler(services *service.Services, log zerolog.Logger) *ContentPageHandler {
	return &ContentPageHandler{
		services: services,
		log:      log.With().Str("handler", "contentpage").Logger(),
	}
}

// Save handles POST /admin/content-page
func (h *ContentPageHandler) Save(c *gin.Context) {
	var input models.ContentPageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	page, err := h.services.ContentPage.Save(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Content page saved", page)
}

// Get handles GET /admin/content-page, returning the live draft
func (h *ContentPageHandler) Get(c *gin.Context) {
	page, err := h.services.ContentPage.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", page)
}

// Publish handles PATCH /admin/content-page/publish
func (h *ContentPageHandler) Publish(c *gin.Context) {
	page, err := h.services.ContentPage.Publish(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Content page published", page)
}

// PublicGet handles GET /content-page?version=published. Only the last
// published snapshot is ever served here; the draft stays invisible.
func (h *ContentPageHandler) PublicGet(c *gin.Context) {
	if v := c.Query("version"); v != "" && v != "published" {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	snap, err := h.services.ContentPage.GetPublished(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", snap)
}
