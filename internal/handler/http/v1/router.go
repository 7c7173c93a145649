package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes of the API.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(RequestIDMiddleware())

	router.GET("/", h.home)
	router.GET("/health", h.healthCheck)
	router.GET("/dashboard", h.dashboard)

	api := router.Group("/api")
	{
		api.GET("/incidents", h.listIncidents)
		api.GET("/incidents/:id", h.getIncident)
		api.GET("/stats", h.getStats)
		api.POST("/auth/login", h.login)

		// Single bearer-protected route
		api.GET("/protected", JWTAuthMiddleware(h.cfg, h.logger), h.protected)
	}
}
