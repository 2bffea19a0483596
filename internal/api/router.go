package api

import (
	"net/http"
	"time"

	"github.com/editorial-cms-api/internal/auth"
	"github.com/editorial-cms-api/internal/config"
	"github.com/editorial-cms-api/internal/repository"
	"github.com/editorial-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, users repository.UserRepository, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	postHandler := NewPostHandler(services, log)
	pageHandler := NewContentPageHandler(services, log)
	revalidateHandler := NewRevalidateHandler(&cfg.Revalidate, log)

	// Health check
	router.GET("/health", healthCheck)

	// Public endpoints: unpublished content is indistinguishable from
	// nonexistent here, and nothing behind this group requires a token.
	router.GET("/content-page", pageHandler.PublicGet)
	router.GET("/posts", postHandler.PublicList)
	router.GET("/posts/:slug", postHandler.PublicGetBySlug)
	router.GET("/preview/:id", postHandler.PublicPreview)
	router.POST("/revalidate", revalidateHandler.Revalidate)

	// Admin endpoints: token auth first, then a per-route permission.
	admin := router.Group("/admin")
	admin.Use(requireAuth(users, log))
	{
		posts := admin.Group("/posts")
		{
			posts.POST("", requirePermission(auth.ActionPostCreate), postHandler.Create)
			posts.GET("", requirePermission(auth.ActionPostView), postHandler.List)
			posts.GET("/:id", requirePermission(auth.ActionPostView), postHandler.Get)
			posts.PATCH("/:id", requirePermission(auth.ActionPostEdit), postHandler.Update)
			posts.DELETE("/:id", requirePermission(auth.ActionPostDelete), postHandler.Delete)
			posts.GET("/:id/preview", requirePermission(auth.ActionPostView), postHandler.Preview)
		}

		page := admin.Group("/content-page")
		{
			page.POST("", requirePermission(auth.ActionPostEdit), pageHandler.Save)
			page.GET("", requirePermission(auth.ActionPostView), pageHandler.Get)
			page.PATCH("/publish", requirePermission(auth.ActionPostPublish), pageHandler.Publish)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "editorial-cms-api",
	})
}
