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

// UpdateSubRegion godoc
// @Summary Rename a sub-region
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sub-region ID"
// @Param body body models.UpdateSubRegionRequest true "New name"
// @Success 200 {object} models.ApiResponse{data=models.SubRegionResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/sub-regions/{id} [put]
func UpdateSubRegion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid sub-region ID"))
		return
	}

	var req models.UpdateSubRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Sub-region name is required"))
		return
	}
	name := strings.TrimSpace(req.Name)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var sub models.SubRegion
	if err := config.ConsoleGorm.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Sub-region not found"))
			return
		}
		log.Printf("[area.update-sub-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update sub-region"))
		return
	}

	taken, err := subRegionNameTaken(ctx, sub.RegionID.String(), name, id.String())
	if err != nil {
		log.Printf("[area.update-sub-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update sub-region"))
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Sub-region with this name already exists in this region"))
		return
	}

	if err := config.ConsoleGorm.WithContext(ctx).Model(&sub).Update("name", name).Error; err != nil {
		log.Printf("[area.update-sub-region] failed to update %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update sub-region"))
		return
	}
	sub.Name = name

	services.InvalidateCatalog()

	var region models.Region
	_ = config.ConsoleGorm.WithContext(ctx).Select("name").First(&region, "id = ?", sub.RegionID).Error

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sub-region updated successfully", sub.ToResponse(region.Name)))
}
