package user_controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// GetUsers godoc
// @Summary List console users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Matches username, email or full name"
// @Success 200 {object} models.ApiResponse{data=[]models.UserResponse}
// @Router /api/v1/users [get]
func GetUsers(c *gin.Context) {
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

	query := config.ConsoleGorm.WithContext(ctx).Model(&models.User{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[user.list] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch users"))
		return
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		log.Printf("[user.list] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch users"))
		return
	}

	response := make([]models.UserResponse, len(users))
	for i := range users {
		response[i] = users[i].ToResponse()
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Users fetched", response, models.NewPagination(page, limit, total)))
}
