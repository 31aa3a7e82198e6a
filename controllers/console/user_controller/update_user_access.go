package user_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdateUserAccess godoc
// @Summary Change a user's role and module access
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body models.UpdateUserAccessRequest true "Role and access"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/users/{id} [put]
func UpdateUserAccess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid user ID"))
		return
	}

	var req models.UpdateUserAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Role and access are required"))
		return
	}
	role, access, err := normalizeRoleAndAccess(req.Role, req.Access)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	if err := config.ConsoleGorm.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
			return
		}
		log.Printf("[user.update] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update user"))
		return
	}

	if err := config.ConsoleGorm.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"role":         role,
		"access_level": datatypes.JSONSlice[string](access),
	}).Error; err != nil {
		log.Printf("[user.update] failed to update %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update user"))
		return
	}
	user.Role = role
	user.AccessLevel = access

	log.Printf("[user.update] %s is now %s with %v", user.Username, role, access)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "User updated successfully", user.ToResponse()))
}
