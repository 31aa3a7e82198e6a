package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/gin-gonic/gin"
)

// SetupConsoleRoutes mounts every console API group under rg
func SetupConsoleRoutes(rg *gin.RouterGroup) {
	SetupAuthRoutes(rg)
	SetupDashboardRoutes(rg)

	limited := rg.Group("")
	limited.Use(middleware.RateLimiter(config.App.RateLimitRequests, config.App.RateLimitWindow))
	SetupAreaRoutes(limited)
	SetupCameraRoutes(limited)
	SetupUserRoutes(limited)
	SetupSettingsRoutes(limited)
	SetupDetectionRoutes(limited)
	SetupActivityRoutes(limited)
}
