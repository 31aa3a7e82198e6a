package user_controller

import (
	"context"
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

// DeleteUser godoc
// @Summary Delete a console user
// @Description Ends the user's sessions; the stored profile image is removed in the background
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/users/{id} [delete]
func DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid user ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := RemoveUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
			return
		}
		log.Printf("[user.delete] failed to delete %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete user"))
		return
	}

	log.Printf("[user.delete] deleted %s (%s)", user.Username, id)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "User deleted successfully", gin.H{"id": id}))
}

// RemoveUser revokes the sessions of id, deletes the row and schedules the image cleanup
func RemoveUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := config.ConsoleGorm.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if err := services.GetSessionService().DeactivateAllForUser(ctx, id); err != nil {
		log.Printf("[user.delete] failed to end sessions of %s: %v", id, err)
	}

	if err := config.ConsoleGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	}); err != nil {
		return nil, err
	}

	DeleteProfileImageAsync(user.ProfileImageID)
	return &user, nil
}
