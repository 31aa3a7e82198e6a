package camera_controller

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

// GetCameraByID godoc
// @Summary Get a camera
// @Tags Cameras
// @Produce json
// @Security BearerAuth
// @Param id path string true "Camera ID"
// @Success 200 {object} models.ApiResponse{data=models.CameraResponse}
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/cameras/{id} [get]
func GetCameraByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid camera ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	camera, err := loadCamera(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Camera not found"))
			return
		}
		log.Printf("[camera.get] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch camera"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Camera fetched", camera.ToResponse()))
}
