package camera_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateCamera godoc
// @Summary Update a camera
// @Description Full update; the same validation as create applies
// @Tags Cameras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Camera ID"
// @Param body body models.CameraRequest true "Camera"
// @Success 200 {object} models.ApiResponse{data=models.CameraResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/cameras/{id} [put]
func UpdateCamera(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid camera ID"))
		return
	}

	var req models.CameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "All fields are required"))
		return
	}
	if err := normalizeCameraRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var camera models.Camera
	if err := config.ConsoleGorm.WithContext(ctx).First(&camera, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Camera not found"))
			return
		}
		log.Printf("[camera.update] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update camera"))
		return
	}

	if err := checkPlacement(ctx, req.RegionID, req.SubRegionID); err != nil {
		if isPlacementError(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		log.Printf("[camera.update] placement check failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update camera"))
		return
	}

	if err := config.ConsoleGorm.WithContext(ctx).Model(&camera).Updates(map[string]interface{}{
		"name":          req.Name,
		"rtsp_url":      req.RTSPURL,
		"region_id":     req.RegionID,
		"sub_region_id": req.SubRegionID,
		"description":   req.Description,
		"access_level":  req.AccessLevel,
		"status":        req.Status,
	}).Error; err != nil {
		log.Printf("[camera.update] failed to update %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update camera"))
		return
	}

	services.InvalidateCatalog()

	updated, err := loadCamera(ctx, id)
	if err != nil {
		log.Printf("[camera.update] failed to reload camera: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update camera"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Camera updated successfully", updated.ToResponse()))
}
