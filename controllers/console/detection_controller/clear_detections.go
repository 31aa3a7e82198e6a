package detection_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// ClearDetections godoc
// @Summary Delete every detection
// @Tags Detections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Router /api/v1/detections [delete]
func ClearDetections(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	deleted, err := services.GetDetectionService().ClearDetections(ctx)
	if err != nil {
		log.Printf("[detection.clear] failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to clear detections"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Detections cleared", gin.H{"deleted": deleted}))
}
