package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"marga/handlers"
	"marga/middleware"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Marga"})
	})
}

// RegisterAPIRoutes registers the login endpoint and the authenticated API.
func RegisterAPIRoutes(r *gin.Engine, h *handlers.Handler) {
	api := r.Group("/api")
	{
		api.POST("/login", h.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(h.Repo))
		api.POST("/command", h.CommandHandler)
		api.GET("/clients", h.ListClientsHandler)
		api.GET("/clients/:id", h.GetClientHandler)
		api.GET("/sessions", h.ListSessionsHandler)
		api.POST("/import", h.ImportHandler)
		api.GET("/export", h.ExportHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAPIRoutes(r, h)
}
