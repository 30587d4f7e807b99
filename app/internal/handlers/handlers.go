package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gift-link/app/internal/services"
	"gift-link/shared/config"
	"gift-link/shared/logger"
)

// RequestID tags every request with an X-Request-ID, generating one when
// the client did not send its own.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RegisterRoutes mounts the root landing endpoint.
func RegisterRoutes(router *gin.Engine, appLogger *logger.Logger) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Gift link service is running."})
	})
}

// RegisterAPIRoutes mounts the liveness endpoint under /api/v1.
func RegisterAPIRoutes(router *gin.Engine, appLogger *logger.Logger) {
	apiGroup := router.Group("/api/v1")
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}

// RegisterLinkRoutes mounts the public link resolution page. A nil store
// puts the page into degraded mode: no lookups, placeholder content.
func RegisterLinkRoutes(router *gin.Engine, appLogger *logger.Logger, store services.RequestStore, baseURL string) {
	page := NewPageHandler(store, baseURL, appLogger)
	router.SetHTMLTemplate(pageTemplate)
	router.GET("/"+config.LinkPathSegment+"/:token", page.Resolve)
}
