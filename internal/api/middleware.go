package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/editorial-cms-api/internal/auth"
	"github.com/editorial-cms-api/internal/models"
	"github.com/editorial-cms-api/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Auth failure messages. "no token" and "invalid token" are distinct
// conditions and both differ from a permission denial.
const (
	MsgNoToken      = "Not authorized - no token"
	MsgInvalidToken = "Not authorized - invalid token"
)

const actorKey = "actor"

// requireAuth resolves the bearer token to an actor and stores it on the
// request context. Anonymous requests never get past this point.
func requireAuth(users repository.UserRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respondError(c, http.StatusUnauthorized, MsgNoToken)
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			respondError(c, http.StatusUnauthorized, MsgNoToken)
			c.Abort()
			return
		}

		user, err := users.GetByToken(c.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve token")
			respondError(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}
		if user == nil || !user.Active {
			respondError(c, http.StatusUnauthorized, MsgInvalidToken)
			c.Abort()
			return
		}

		c.Set(actorKey, user)
		c.Next()
	}
}

// requirePermission gates a route on a single action. The message names
// the missing action so clients can tell authorization failures apart.
func requirePermission(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		if actor == nil || !auth.Can(actor.Role, action) {
			respondError(c, http.StatusForbidden, permissionDeniedMessage(action))
			c.Abort()
			return
		}
		c.Next()
	}
}

func permissionDeniedMessage(action string) string {
	return fmt.Sprintf("Permission denied: requires %s", action)
}

// Actor returns the authenticated user set by requireAuth
func Actor(c *gin.Context) *models.User {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				respondError(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Revalidate-Secret")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
