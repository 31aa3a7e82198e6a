package area_controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSubRegion godoc
// @Summary Create a sub-region under a region
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateSubRegionRequest true "Sub-region"
// @Success 201 {object} models.ApiResponse{data=models.SubRegionResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Region not found"
// @Router /api/v1/sub-regions [post]
func CreateSubRegion(c *gin.Context) {
	var req models.CreateSubRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Sub-region name and region are required"))
		return
	}
	name := strings.TrimSpace(req.Name)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Parent must exist
	var region models.Region
	if err := config.ConsoleGorm.WithContext(ctx).First(&region, "id = ?", req.RegionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Region not found"))
			return
		}
		log.Printf("[area.create-sub-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create sub-region"))
		return
	}

	// Step 2: Unique within the region
	taken, err := subRegionNameTaken(ctx, region.ID.String(), name, "")
	if err != nil {
		log.Printf("[area.create-sub-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create sub-region"))
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Sub-region with this name already exists in this region"))
		return
	}

	// Step 3: Insert
	sub := models.SubRegion{Name: name, RegionID: region.ID}
	if err := config.ConsoleGorm.WithContext(ctx).Create(&sub).Error; err != nil {
		log.Printf("[area.create-sub-region] failed to create sub-region: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create sub-region"))
		return
	}

	services.InvalidateCatalog()
	c.Set(models.CtxCreatedResourceID, sub.ID.String())

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Sub-region created successfully", sub.ToResponse(region.Name)))
}

// subRegionNameTaken checks name uniqueness inside one region, optionally excluding a row
func subRegionNameTaken(ctx context.Context, regionID, name, excludeID string) (bool, error) {
	q := config.ConsoleGorm.WithContext(ctx).
		Model(&models.SubRegion{}).
		Where("region_id = ? AND LOWER(name) = LOWER(?)", regionID, name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
