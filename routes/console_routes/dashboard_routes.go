package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/dashboard_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes registers the live dashboard and the MJPEG feeds.
// Not rate limited: every open feed is one long request and workers push several frames a second.
func SetupDashboardRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("")
	dashboard.Use(
		middleware.ConsoleAuthMiddleware(),
		middleware.RequireModule(models.ModuleDashboard),
	)
	{
		dashboard.GET("/dashboard/cameras", dashboard_controller.GetDashboardCameras)
		dashboard.GET("/dashboard/options", dashboard_controller.GetDashboardOptions)
		dashboard.GET("/video_feed/:cameraId", dashboard_controller.VideoFeed)
	}

	// Worker push
	rg.POST("/video_feed/:cameraId/frames",
		middleware.WorkerOrConsoleAuth(),
		middleware.RequireWorkerOrAdmin(),
		dashboard_controller.PublishFrame,
	)
}
