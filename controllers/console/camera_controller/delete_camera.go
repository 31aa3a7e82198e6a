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

// DeleteCamera godoc
// @Summary Delete a camera
// @Description Past detections keep their copied camera name
// @Tags Cameras
// @Produce json
// @Security BearerAuth
// @Param id path string true "Camera ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/cameras/{id} [delete]
func DeleteCamera(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid camera ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result := config.ConsoleGorm.WithContext(ctx).Delete(&models.Camera{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("[camera.delete] failed to delete %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete camera"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Camera not found"))
		return
	}

	services.InvalidateCatalog()
	services.GetFeedHub().Forget(id)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Camera deleted successfully", gin.H{"id": id}))
}
