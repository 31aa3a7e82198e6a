package detection_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDetectionByID godoc
// @Summary Get a detection
// @Tags Detections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Detection ID"
// @Success 200 {object} models.ApiResponse{data=models.DetectionRow}
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/detections/{id} [get]
func GetDetectionByID(c *gin.Context) {
	detection, ok := findDetection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Detection fetched", detection.ToRow()))
}

// findDetection loads /:id and writes the error response itself
func findDetection(c *gin.Context) (*models.Detection, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid detection ID"))
		return nil, false
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var detection models.Detection
	if err := config.ConsoleGorm.WithContext(ctx).First(&detection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Detection not found"))
			return nil, false
		}
		log.Printf("[detection.get] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch detection"))
		return nil, false
	}
	return &detection, true
}
