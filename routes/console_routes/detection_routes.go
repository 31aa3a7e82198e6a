package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/detection_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// SetupDetectionRoutes registers the log report and detection ingest
func SetupDetectionRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/detections")
	reports.Use(
		middleware.ConsoleAuthMiddleware(),
		middleware.RequireModule(models.ModuleReportsAnalytics),
	)
	{
		reports.GET("", detection_controller.GetDetections)
		reports.GET("/options", detection_controller.GetDetectionOptions)
		reports.GET("/report", detection_controller.DownloadReport)
		reports.GET("/:id", detection_controller.GetDetectionByID)
		reports.GET("/:id/pdf", detection_controller.DownloadDetectionPDF)
		reports.DELETE("",
			middleware.RequireAdmin(),
			middleware.ActivityLoggingMiddleware(),
			detection_controller.ClearDetections,
		)
	}

	// Worker push
	rg.POST("/detections",
		middleware.WorkerOrConsoleAuth(),
		middleware.RequireWorkerOrAdmin(),
		middleware.ActivityLoggingMiddleware(),
		detection_controller.CreateDetection,
	)
}
