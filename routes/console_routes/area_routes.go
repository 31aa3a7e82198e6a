package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/area_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// SetupAreaRoutes registers regions and sub-regions
func SetupAreaRoutes(rg *gin.RouterGroup) {
	// Dropdown data used by the camera form and the filters
	lookups := rg.Group("")
	lookups.Use(middleware.ConsoleAuthMiddleware())
	{
		lookups.GET("/regions-list", area_controller.GetRegionsList)
		lookups.GET("/areas/options", area_controller.GetAreaOptions)
	}

	areas := rg.Group("")
	areas.Use(
		middleware.ConsoleAuthMiddleware(),
		middleware.RequireModule(models.ModuleAreaManagement),
		middleware.ActivityLoggingMiddleware(),
	)
	{
		areas.GET("/regions", area_controller.GetRegions)
		areas.POST("/regions", area_controller.CreateRegion)
		areas.PUT("/regions/:id", area_controller.UpdateRegion)
		areas.DELETE("/regions/:id", area_controller.DeleteRegion)

		areas.POST("/sub-regions", area_controller.CreateSubRegion)
		areas.PUT("/sub-regions/:id", area_controller.UpdateSubRegion)
		areas.DELETE("/sub-regions/:id", area_controller.DeleteSubRegion)
	}
}
