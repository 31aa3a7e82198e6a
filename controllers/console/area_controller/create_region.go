package area_controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// CreateRegion godoc
// @Summary Create a region
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateRegionRequest true "Region"
// @Success 201 {object} models.ApiResponse{data=models.RegionResponse}
// @Failure 400 {object} models.ApiResponse "Missing name or duplicate"
// @Router /api/v1/regions [post]
func CreateRegion(c *gin.Context) {
	var req models.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Region name is required"))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Region name is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Uniqueness (case-insensitive)
	var count int64
	if err := config.ConsoleGorm.WithContext(ctx).
		Model(&models.Region{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		log.Printf("[area.create-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create region"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Region with this name already exists"))
		return
	}

	// Step 2: Insert
	region := models.Region{Name: name}
	if err := config.ConsoleGorm.WithContext(ctx).Create(&region).Error; err != nil {
		log.Printf("[area.create-region] failed to create region: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create region"))
		return
	}

	services.InvalidateCatalog()
	c.Set(models.CtxCreatedResourceID, region.ID.String())

	log.Printf("[area.create-region] created %s (%s)", region.Name, region.ID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Region created successfully", region.ToResponse()))
}
