package camera_controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// GetCameras godoc
// @Summary List cameras
// @Description Paginated camera management table with region and sub-region names
// @Tags Cameras
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param region query string false "Region name"
// @Param sub_region query string false "Sub-region name"
// @Param status query string false "Active or Inactive"
// @Param search query string false "Matches camera name or description"
// @Success 200 {object} models.ApiResponse{data=[]models.CameraResponse}
// @Router /api/v1/cameras [get]
func GetCameras(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.App.PageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = config.App.PageSize
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.ConsoleGorm.WithContext(ctx).
		Model(&models.Camera{}).
		Joins("Region").
		Joins("SubRegion")

	if region := strings.TrimSpace(c.Query("region")); region != "" {
		query = query.Where(`"Region"."name" = ?`, region)
	}
	if sub := strings.TrimSpace(c.Query("sub_region")); sub != "" {
		query = query.Where(`"SubRegion"."name" = ?`, sub)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("cameras.status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(cameras.name) LIKE ? OR LOWER(cameras.description) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[camera.list] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cameras"))
		return
	}

	var cameras []models.Camera
	if err := query.
		Order("cameras.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&cameras).Error; err != nil {
		log.Printf("[camera.list] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cameras"))
		return
	}

	response := make([]models.CameraResponse, len(cameras))
	for i := range cameras {
		response[i] = cameras[i].ToResponse()
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Cameras fetched", response, models.NewPagination(page, limit, total)))
}
