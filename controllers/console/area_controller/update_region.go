package area_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateRegion godoc
// @Summary Rename a region
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Region ID"
// @Param body body models.UpdateRegionRequest true "New name"
// @Success 200 {object} models.ApiResponse{data=models.RegionResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/regions/{id} [put]
func UpdateRegion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid region ID"))
		return
	}

	var req models.UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Region name is required"))
		return
	}
	name := strings.TrimSpace(req.Name)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var region models.Region
	if err := config.ConsoleGorm.WithContext(ctx).First(&region, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Region not found"))
			return
		}
		log.Printf("[area.update-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update region"))
		return
	}

	var count int64
	if err := config.ConsoleGorm.WithContext(ctx).
		Model(&models.Region{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
		Count(&count).Error; err != nil {
		log.Printf("[area.update-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update region"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Region with this name already exists"))
		return
	}

	if err := config.ConsoleGorm.WithContext(ctx).Model(&region).Update("name", name).Error; err != nil {
		log.Printf("[area.update-region] failed to update region %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update region"))
		return
	}

	// Detections keep the name they were raised under; cameras follow the rename through the join
	services.InvalidateCatalog()

	if err := config.ConsoleGorm.WithContext(ctx).
		Preload("SubRegions", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&region, "id = ?", id).Error; err != nil {
		log.Printf("[area.update-region] failed to reload region: %v", err)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Region updated successfully", region.ToResponse()))
}
