package activity_controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetActivityLogs godoc
// @Summary Console audit trail
// @Tags Activity Logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param resource_type query string false "region, sub_region, camera, user, settings or detection"
// @Param user_id query string false "Actor ID"
// @Param status query string false "success or failed"
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLogResponse}
// @Failure 403 {object} models.ApiResponse
// @Router /api/v1/activity-logs [get]
func GetActivityLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var userID uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid user ID"))
			return
		}
		userID = parsed
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.ConsoleGorm.WithContext(ctx).Model(&models.ActivityLog{})
	if rt := strings.TrimSpace(c.Query("resource_type")); rt != "" {
		query = query.Where("resource_type = ?", rt)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[activity.list] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch activity logs"))
		return
	}

	var logs []models.ActivityLog
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		log.Printf("[activity.list] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch activity logs"))
		return
	}

	response := make([]models.ActivityLogResponse, len(logs))
	for i := range logs {
		response[i] = logs[i].ToResponse()
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Activity logs fetched", response, models.NewPagination(page, limit, total)))
}
