package camera_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UpdateCameraStatus godoc
// @Summary Activate or deactivate a camera
// @Tags Cameras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Camera ID"
// @Param body body models.UpdateCameraStatusRequest true "Active or Inactive"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/cameras/{id}/status [put]
func UpdateCameraStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid camera ID"))
		return
	}

	var req models.UpdateCameraStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, errBadStatus.Error()))
		return
	}
	if req.Status != models.CameraStatusActive && req.Status != models.CameraStatusInactive {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, errBadStatus.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result := config.ConsoleGorm.WithContext(ctx).
		Model(&models.Camera{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if result.Error != nil {
		log.Printf("[camera.status] failed to update %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update camera status"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Camera not found"))
		return
	}

	services.InvalidateCatalog()

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Camera status updated", gin.H{"id": id, "status": req.Status}))
}
