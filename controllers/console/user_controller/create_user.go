package user_controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/Asadel-Surveillance/asadel-console/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateUser godoc
// @Summary Create a console user
// @Description Accepts JSON or multipart. A multipart body may carry a profileImage file (png, jpg, jpeg or gif).
// @Tags Users
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateUserRequest true "User"
// @Success 201 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/users [post]
func CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "All fields are required"))
		return
	}

	// Step 1: Field rules
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	role, access, err := normalizeRoleAndAccess(req.Role, req.Access)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}
	dob, err := models.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, errInvalidDOB.Error()))
		return
	}
	image, _ := c.FormFile("profileImage")
	if image != nil {
		if err := services.ValidateImageUpload(image.Filename, image.Size, config.App.MaxImageBytes); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Uniqueness
	if err := identityTaken(ctx, req.Username, req.Email, uuid.Nil); err != nil {
		if isConflict(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		log.Printf("[user.create] uniqueness check failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create user"))
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		log.Printf("[user.create] failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create user"))
		return
	}

	user := models.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
		Role:         role,
		AccessLevel:  datatypes.JSONSlice[string](access),
		Country:      strings.TrimSpace(req.Country),
		DateOfBirth:  dob,
	}

	// Step 3: Optional profile image
	if image != nil {
		url, publicID, err := UploadProfileImage(ctx, image, user.ID)
		if err != nil {
			if IsImageError(err) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
				return
			}
			log.Printf("[user.create] image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload profile image"))
			return
		}
		user.ProfileImage = url
		user.ProfileImageID = publicID
	}

	if err := config.ConsoleGorm.WithContext(ctx).Create(&user).Error; err != nil {
		log.Printf("[user.create] failed to create user: %v", err)
		DeleteProfileImageAsync(user.ProfileImageID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create user"))
		return
	}

	c.Set(models.CtxCreatedResourceID, user.ID.String())
	log.Printf("[user.create] created %s (%s) as %s", user.Username, user.ID, user.Role)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "User created successfully", user.ToResponse()))
}
