package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/camera_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// SetupCameraRoutes registers camera management
func SetupCameraRoutes(rg *gin.RouterGroup) {
	cameras := rg.Group("")
	cameras.Use(
		middleware.ConsoleAuthMiddleware(),
		middleware.RequireModule(models.ModuleCameraManagement),
		middleware.ActivityLoggingMiddleware(),
	)
	{
		cameras.GET("/cameras", camera_controller.GetCameras)
		cameras.GET("/cameras/options", camera_controller.GetCameraOptions)
		cameras.GET("/cameras/:id", camera_controller.GetCameraByID)
		cameras.POST("/cameras", camera_controller.CreateCamera)
		cameras.POST("/AddCamera", camera_controller.CreateCamera)
		cameras.PUT("/cameras/:id", camera_controller.UpdateCamera)
		cameras.PUT("/cameras/:id/status", camera_controller.UpdateCameraStatus)
		cameras.DELETE("/cameras/:id", camera_controller.DeleteCamera)
	}
}
