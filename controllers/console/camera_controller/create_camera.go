package camera_controller

import (
	"context"
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateCamera godoc
// @Summary Register a camera
// @Description Also served at POST /api/v1/AddCamera for older console builds
// @Tags Cameras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CameraRequest true "Camera"
// @Success 201 {object} models.ApiResponse{data=models.CameraResponse}
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/cameras [post]
func CreateCamera(c *gin.Context) {
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

	// Step 1: Region must own the sub-region
	if err := checkPlacement(ctx, req.RegionID, req.SubRegionID); err != nil {
		if isPlacementError(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		log.Printf("[camera.create] placement check failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create camera"))
		return
	}

	// Step 2: Insert
	camera := models.Camera{
		Name:        req.Name,
		RTSPURL:     req.RTSPURL,
		RegionID:    req.RegionID,
		SubRegionID: req.SubRegionID,
		Description: req.Description,
		AccessLevel: req.AccessLevel,
		Status:      req.Status,
	}
	if err := config.ConsoleGorm.WithContext(ctx).Create(&camera).Error; err != nil {
		log.Printf("[camera.create] failed to create camera: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create camera"))
		return
	}

	services.InvalidateCatalog()
	c.Set(models.CtxCreatedResourceID, camera.ID.String())

	created, err := loadCamera(ctx, camera.ID)
	if err != nil {
		created = &camera
	}

	log.Printf("[camera.create] registered %s (%s)", camera.Name, camera.ID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Camera added successfully", created.ToResponse()))
}

// loadCamera fetches a camera with its region and sub-region names
func loadCamera(ctx context.Context, id uuid.UUID) (*models.Camera, error) {
	var camera models.Camera
	if err := config.ConsoleGorm.WithContext(ctx).
		Preload("Region").
		Preload("SubRegion").
		First(&camera, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &camera, nil
}
