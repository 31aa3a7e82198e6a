package detection_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// GetDetectionOptions godoc
// @Summary Cascading log report filter options
// @Tags Detections
// @Produce json
// @Security BearerAuth
// @Param region query string false "Selected region"
// @Param sub_region query string false "Selected sub-region"
// @Param camera query string false "Selected camera"
// @Param level query string false "Dropdown that just changed (region, sub_region, camera); values below it are dropped"
// @Success 200 {object} models.ApiResponse{data=models.CascadeOptions}
// @Router /api/v1/detections/options [get]
func GetDetectionOptions(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	records, err := services.LoadDetectionRecords(ctx)
	if err != nil {
		log.Printf("[detection.options] failed to load records: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch options"))
		return
	}

	options := models.BuildCascadeOptions(models.DetectionCascade, records, models.SelectionFromQuery(c))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Options fetched", options))
}
