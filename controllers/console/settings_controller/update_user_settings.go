package settings_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/user_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/Asadel-Surveillance/asadel-console/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// removeImageValue is what the settings form sends to drop the current picture
const removeImageValue = "null"

// settingsForm is the multipart body of the settings page
type settingsForm struct {
	Name        string   `form:"name"`
	Email       string   `form:"email"`
	Role        string   `form:"role"`
	Access      []string `form:"access"`
	DateOfBirth string   `form:"dateOfBirth"`
	Country     string   `form:"country"`
	OldPassword string   `form:"oldPassword"`
	NewPassword string   `form:"newPassword"`
}

// UpdateUserSettings godoc
// @Summary Update account settings
// @Description Self only unless the caller is Admin. Role and access are only applied for Admin callers. Send profileImage=null to remove the picture.
// @Tags Settings
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param name formData string false "Full name"
// @Param email formData string false "Email"
// @Param role formData string false "Admin or User"
// @Param access formData []string false "Module access"
// @Param dateOfBirth formData string false "YYYY-MM-DD"
// @Param country formData string false "Country"
// @Param oldPassword formData string false "Current password"
// @Param newPassword formData string false "New password"
// @Param profileImage formData file false "Profile image"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Invalid old password"
// @Failure 403 {object} models.ApiResponse
// @Router /api/v1/settings/user/{id} [put]
func UpdateUserSettings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid user ID"))
		return
	}

	var form settingsForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid settings form"))
		return
	}

	updates, err := buildSettingsUpdates(form, middleware.IsAdmin(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	if form.NewPassword != "" {
		if form.OldPassword == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Old password is required to set a new one"))
			return
		}
		if err := validation.ValidatePassword(form.NewPassword); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
	}

	removeImage := c.PostForm("profileImage") == removeImageValue
	image, _ := c.FormFile("profileImage")
	if image != nil {
		if err := services.ValidateImageUpload(image.Filename, image.Size, config.App.MaxImageBytes); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var user models.User
	if err := config.ConsoleGorm.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
			return
		}
		log.Printf("[settings.update] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update settings"))
		return
	}
	before := user.ToResponse()

	// Step 1: Password change
	if form.NewPassword != "" {
		if !services.VerifyPassword(user.PasswordHash, form.OldPassword) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid old password"))
			return
		}
		hash, err := services.HashPassword(form.NewPassword)
		if err != nil {
			log.Printf("[settings.update] failed to hash password: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update settings"))
			return
		}
		updates["password_hash"] = hash
	}

	// Step 2: Email uniqueness
	if email, ok := updates["email"].(string); ok && !strings.EqualFold(email, user.Email) {
		var count int64
		if err := config.ConsoleGorm.WithContext(ctx).Model(&models.User{}).
			Where("LOWER(email) = LOWER(?) AND id <> ?", email, id).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update settings"))
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email already exists"))
			return
		}
	}

	// Step 3: Profile image
	oldImageID, newImageID := "", ""
	switch {
	case image != nil:
		url, publicID, err := user_controller.UploadProfileImage(ctx, image, user.ID)
		if err != nil {
			if user_controller.IsImageError(err) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
				return
			}
			log.Printf("[settings.update] image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload profile image"))
			return
		}
		updates["profile_image"] = url
		updates["profile_image_id"] = publicID
		oldImageID, newImageID = user.ProfileImageID, publicID
	case removeImage:
		updates["profile_image"] = ""
		updates["profile_image_id"] = ""
		oldImageID = user.ProfileImageID
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Nothing to update", before))
		return
	}

	err = config.ConsoleGorm.WithContext(ctx).Model(&user).Updates(updates).Error
	user_controller.DeleteProfileImageAsync(discardedImage(err == nil, oldImageID, newImageID))
	if err != nil {
		log.Printf("[settings.update] failed to update %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update settings"))
		return
	}

	if _, ok := updates["password_hash"]; ok && !middleware.IsAdmin(c) {
		// Every session of this user, the current one included, must sign in again
		if err := services.GetSessionService().DeactivateAllForUser(ctx, user.ID); err != nil {
			log.Printf("[settings.update] failed to end sessions: %v", err)
		}
	}

	var updated models.User
	if err := config.ConsoleGorm.WithContext(ctx).First(&updated, "id = ?", id).Error; err != nil {
		updated = user
	}

	delete(updates, "password_hash")
	log.Printf("[settings.update] %s updated %d fields", updated.Username, len(updates))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Settings updated successfully", updated.ToResponse()))
}

// buildSettingsUpdates turns the non-empty form fields into column updates.
// Role and access are applied only for admins.
func buildSettingsUpdates(form settingsForm, admin bool) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if name := strings.TrimSpace(form.Name); name != "" {
		updates["full_name"] = name
	}
	if email := strings.ToLower(strings.TrimSpace(form.Email)); email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if country := strings.TrimSpace(form.Country); country != "" {
		updates["country"] = country
	}
	if dob := strings.TrimSpace(form.DateOfBirth); dob != "" {
		parsed, err := models.ParseDateOfBirth(dob)
		if err != nil {
			return nil, errors.New("Invalid date of birth, expected YYYY-MM-DD")
		}
		updates["date_of_birth"] = parsed
	}

	if !admin {
		return updates, nil
	}
	if strings.TrimSpace(form.Role) != "" {
		role := models.NormalizeRole(form.Role)
		if role == "" {
			return nil, errors.New("Role must be Admin or User")
		}
		updates["role"] = role
	}
	if len(form.Access) > 0 {
		access, err := services.NormalizeAccess(user_controller.SplitAccessField(form.Access))
		if err != nil {
			return nil, err
		}
		if len(access) == 0 {
			return nil, errors.New("At least one access module is required")
		}
		updates["access_level"] = datatypes.JSONSlice[string](access)
	}
	return updates, nil
}

// discardedImage is the stored image nothing points at once the update
// settles: the replaced one on success, the fresh upload on failure
func discardedImage(saved bool, oldImageID, newImageID string) string {
	if saved {
		return oldImageID
	}
	return newImageID
}
