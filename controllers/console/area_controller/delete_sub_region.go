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

// DeleteSubRegion godoc
// @Summary Delete a sub-region
// @Description Refused while any camera still references the sub-region
// @Tags Areas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sub-region ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Cameras still attached"
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/sub-regions/{id} [delete]
func DeleteSubRegion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid sub-region ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var sub models.SubRegion
	if err := config.ConsoleGorm.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Sub-region not found"))
			return
		}
		log.Printf("[area.delete-sub-region] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete sub-region"))
		return
	}

	names, err := attachedCameraNames(ctx, "sub_region_id", id)
	if err != nil {
		log.Printf("[area.delete-sub-region] failed to count cameras: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete sub-region"))
		return
	}
	if len(names) > 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, blockedByCameras("sub-region", names)))
		return
	}

	if err := config.ConsoleGorm.WithContext(ctx).Delete(&sub).Error; err != nil {
		log.Printf("[area.delete-sub-region] failed to delete %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete sub-region"))
		return
	}

	services.InvalidateCatalog()

	log.Printf("[area.delete-sub-region] deleted %s", sub.Name)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sub-region deleted successfully", gin.H{"id": id}))
}
