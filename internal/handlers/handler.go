package handlers

import (
	"bearbank/internal/logger"
	"bearbank/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		// Public auth endpoints
		api.POST("/register", h.register)
		api.POST("/login", h.login)

		// Protected endpoints
		authed := api.Group("", h.authMiddleware)
		{
			authed.GET("/me", h.me)
			authed.GET("/users", h.listUsers)
			authed.POST("/transfer", h.transfer)

			admin := authed.Group("/admin", h.adminOnly)
			{
				admin.GET("/users", h.listUsersAdmin)
				admin.POST("/adjust", h.adjustBalance)
			}
		}
	}

	// Live balance feed (HTTP upgrade) — same port; authenticates itself.
	router.GET("/ws", h.wsBalance)

	return router
}
