package api

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/editorial-cms-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RevalidateHandler receives inbound revalidation requests
type RevalidateHandler struct {
	cfg *config.RevalidateConfig
	log zerolog.Logger
}

// NewRevalidateHandler creates a new RevalidateHandler
func NewRevalidateHandler(cfg *config.RevalidateConfig, log zerolog.Logger) *RevalidateHandler {
	return &RevalidateHandler{
		cfg: cfg,
		log: log.With().Str("handler", "revalidate").Logger(),
	}
}

// Revalidate handles POST /revalidate. The secret header must match;
// path defaults to the configured default when omitted and must be a
// string when present.
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	secret := c.GetHeader("X-Revalidate-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.cfg.Secret)) != 1 {
		respondError(c, http.StatusUnauthorized, "Invalid secret")
		return
	}

	path := h.cfg.DefaultPath

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(body) > 0 {
		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if raw, ok := payload["path"]; ok {
			s, ok := raw.(string)
			if !ok {
				respondError(c, http.StatusBadRequest, "Invalid request")
				return
			}
			path = s
		}
	}

	h.log.Info().Str("path", path).Msg("Path revalidated")
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Path revalidated successfully",
		Path:    path,
	})
}
