package user_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/auth_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMyProfile godoc
// @Summary Current user's profile
// @Tags Users - Me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Router /api/v1/users/me [get]
func GetMyProfile(c *gin.Context) {
	auth_controller.GetMe(c)
}

// UpdateMyProfile godoc
// @Summary Edit the current user's profile fields
// @Tags Users - Me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.UpdateMeRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/users/me [put]
func UpdateMyProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Country != nil {
		updates["country"] = strings.TrimSpace(*req.Country)
	}
	if req.DateOfBirth != nil {
		dob, err := models.ParseDateOfBirth(*req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, errInvalidDOB.Error()))
			return
		}
		updates["date_of_birth"] = dob
	}
	var email string
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
		if err := validation.ValidateEmail(email); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		updates["email"] = email
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if email != "" {
		if err := identityTaken(ctx, "", email, userID); err != nil {
			if isConflict(err) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
				return
			}
			log.Printf("[user.me] uniqueness check failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update profile"))
			return
		}
	}

	var user models.User
	if err := config.ConsoleGorm.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update profile"))
		return
	}
	if err := config.ConsoleGorm.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		log.Printf("[user.me] failed to update %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update profile"))
		return
	}
	_ = config.ConsoleGorm.WithContext(ctx).First(&user, "id = ?", userID).Error

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile updated successfully", user.ToResponse()))
}

// DeleteMyAccount godoc
// @Summary Delete the current user's account and sign out
// @Tags Users - Me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/users/me [delete]
func DeleteMyAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := RemoveUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
			return
		}
		log.Printf("[user.me] failed to delete %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete account"))
		return
	}

	auth_controller.ClearTokenCookie(c)
	log.Printf("[user.me] %s deleted their account", user.Username)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Account deleted successfully", nil))
}
