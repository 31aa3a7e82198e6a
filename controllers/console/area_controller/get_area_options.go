package area_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// GetAreaOptions godoc
// @Summary Cascading area options
// @Description Region, sub-region and camera options under the given selection. Stale values are pruned and echoed back.
// @Tags Areas
// @Produce json
// @Security BearerAuth
// @Param region query string false "Selected region"
// @Param sub_region query string false "Selected sub-region"
// @Param camera query string false "Selected camera"
// @Param level query string false "Dropdown that just changed (region, sub_region, camera); values below it are dropped"
// @Success 200 {object} models.ApiResponse{data=models.CascadeOptions}
// @Router /api/v1/areas/options [get]
func GetAreaOptions(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	records, err := services.LoadCameraRecords(ctx)
	if err != nil {
		log.Printf("[area.options] failed to load cameras: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch options"))
		return
	}

	options := models.BuildCascadeOptions(models.CameraCascade, records, models.SelectionFromQuery(c))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Options fetched", options))
}
