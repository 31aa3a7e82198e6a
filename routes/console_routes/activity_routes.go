package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/activity_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/gin-gonic/gin"
)

func SetupActivityRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity-logs",
		middleware.ConsoleAuthMiddleware(),
		middleware.RequireAdmin(),
		activity_controller.GetActivityLogs,
	)
}
