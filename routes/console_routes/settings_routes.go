package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/settings_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/gin-gonic/gin"
)

// SetupSettingsRoutes registers the account settings page
func SetupSettingsRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings/user/:id")
	settings.Use(
		middleware.ConsoleAuthMiddleware(),
		middleware.RequireSelfOrAdmin("id"),
		middleware.ActivityLoggingMiddleware(),
	)
	{
		settings.GET("", settings_controller.GetUserSettings)
		settings.PUT("", settings_controller.UpdateUserSettings)
	}
}
