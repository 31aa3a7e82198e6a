package detection_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// GetDetections godoc
// @Summary Detection log
// @Description Paginated, newest first. Empty filters match everything.
// @Tags Detections
// @Produce json
// @Security BearerAuth
// @Param region query string false "Region name"
// @Param sub_region query string false "Sub-region name"
// @Param camera query string false "Camera name"
// @Param alert_type query string false "Fire or Smoke"
// @Param from query string false "YYYY-MM-DD, inclusive"
// @Param to query string false "YYYY-MM-DD, inclusive"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.DetectionRow}
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/detections [get]
func GetDetections(c *gin.Context) {
	q, err := bindQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid filter"))
		return
	}
	page, limit := pageParams(c)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query, err := services.ScopeDetections(config.ConsoleGorm.WithContext(ctx).Model(&models.Detection{}), q)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[detection.list] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch detections"))
		return
	}

	var detections []models.Detection
	if err := query.
		Order("detected_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&detections).Error; err != nil {
		log.Printf("[detection.list] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch detections"))
		return
	}

	rows := make([]models.DetectionRow, len(detections))
	for i := range detections {
		rows[i] = detections[i].ToRow()
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Detections fetched", rows, models.NewPagination(page, limit, total)))
}
