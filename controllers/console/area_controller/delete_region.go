package area_controller

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

// DeleteRegion godoc
// @Summary Delete a region and its sub-regions
// @Description Refused while any camera still references the region
// @Tags Areas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Region ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Cameras still attached"
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/regions/{id} [delete]
func DeleteRegion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid region ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var region models.Region
	if err := config.ConsoleGorm.WithContext(ctx).First(&region, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Region not found"))
			return
		}
		log.Printf("[area.delete-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete region"))
		return
	}

	// Step 1: Refuse while cameras are attached
	names, err := attachedCameraNames(ctx, "region_id", id)
	if err != nil {
		log.Printf("[area.delete-region] failed to count cameras: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete region"))
		return
	}
	if len(names) > 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, blockedByCameras("region", names)))
		return
	}

	// Step 2: Sub-regions first, then the region
	err = config.ConsoleGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("region_id = ?", id).Delete(&models.SubRegion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&region).Error
	})
	if err != nil {
		log.Printf("[area.delete-region] failed to delete region %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete region"))
		return
	}

	services.InvalidateCatalog()

	log.Printf("[area.delete-region] deleted %s", region.Name)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Region deleted successfully", gin.H{"id": id}))
}
