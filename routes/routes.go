package routes

import (
	"net/http"
	"time"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAIRoutes registers the chat endpoints.
func RegisterAIRoutes(r *gin.Engine, h *handlers.AIHandler) {
	api := r.Group("/api/ai")
	{
		api.POST("/chat", h.HandleChat)
		api.GET("/transcript", h.HandleTranscript)
		api.POST("/reset", h.HandleReset)
	}
}

// RegisterHealthRoute registers the health endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, aiHandler *handlers.AIHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAIRoutes(r, aiHandler)
	RegisterHealthRoute(r)
}
