package http

import (
	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/bot/internal/transport/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	JWTSecret      string
}

func NewRouter(h *MoveHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", h.Health)

	// Protected Routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/move", h.Decide)
		protected.POST("/games/finish", h.Finish)
		protected.GET("/stats", h.GetStats)
	}

	return router
}
