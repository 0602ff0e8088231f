package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/fyren/internal/models"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", h.login)
	api.GET("/system/health", h.healthCheck)

	// Все остальные маршруты требуют токен сессии
	protected := api.Group("")
	protected.Use(AuthMiddleware(h.tokens, h.services.Auth, h.logger))

	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/me", h.me)
		authGroup.GET("/onboarding", h.getOnboarding)
		authGroup.POST("/onboarding", h.completeOnboarding)
	}

	incidents := protected.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/nearby", h.nearbyIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PATCH("/:id", h.updateIncident)
		incidents.GET("/:id/comments", h.listComments)
		incidents.POST("/:id/comments", h.addComment)
	}

	preferences := protected.Group("/preferences")
	{
		preferences.GET("", h.getPreferences)
		preferences.PUT("", h.updatePreferences)
		preferences.PUT("/mode", h.setThemeMode)
		preferences.PUT("/font-scale", h.setFontScale)
		preferences.POST("/font-scale/increase", h.increaseFontScale)
		preferences.POST("/font-scale/decrease", h.decreaseFontScale)
		preferences.POST("/theme", h.toggleTheme)
		preferences.POST("/high-contrast", h.toggleHighContrast)
	}

	// Панель начальника и администратора
	protected.GET("/dashboard/stats", RequireRoles(models.RoleChief, models.RoleAdmin), h.getStats)

	admin := protected.Group("")
	admin.Use(RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.PATCH("/users/:id", h.updateUser)
		admin.GET("/audit", h.getAuditLog)
		admin.DELETE("/data", h.clearData)
	}
}
