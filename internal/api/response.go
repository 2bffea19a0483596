package api

import (
	"net/http"

	"github.com/editorial-cms-api/internal/service"
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope shared by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Path    string      `json:"path,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// respondServiceError maps a service error onto the envelope. Service
// errors carry their own status and exact message; anything else is an
// internal failure that must not leak details.
func respondServiceError(c *gin.Context, err error) {
	if svcErr, ok := service.AsError(err); ok {
		respondError(c, svcErr.Status, svcErr.Message)
		return
	}
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
