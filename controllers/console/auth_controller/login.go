package auth_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Login godoc
// @Summary Sign in to the console
// @Description Accepts a username or an email. Returns a JWT, records a session and sets the console_token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Username (or email) and password"
// @Success 200 {object} models.ApiResponse{data=models.LoginResponse}
// @Failure 400 {object} models.ApiResponse "Missing fields"
// @Failure 401 {object} models.ApiResponse "Invalid credentials"
// @Failure 403 {object} models.ApiResponse "Account disabled"
// @Router /api/v1/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Username and password are required"))
		return
	}
	identifier := strings.TrimSpace(req.Username)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Find the account by username or email
	var user models.User
	if err := config.ConsoleGorm.WithContext(ctx).
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", identifier, identifier).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[auth.login] unknown user: %s", identifier)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid credentials"))
			return
		}
		log.Printf("[auth.login] database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	// Step 2: Verify password
	if !services.VerifyPassword(user.PasswordHash, req.Password) {
		log.Printf("[auth.login] invalid password: %s", identifier)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid credentials"))
		return
	}

	if user.Status == models.UserStatusDisabled {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Account is disabled"))
		return
	}

	token, err := issueSession(c, &user)
	if err != nil {
		log.Printf("[auth.login] failed to issue session: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	log.Printf("[auth.login] success: %s (%s)", user.Username, user.ID)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}))
}

// issueSession signs a token, stores the session row, stamps last login and sets the cookie
func issueSession(c *gin.Context, user *models.User) (string, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	token, expiresAt, err := services.GenerateConsoleJWT(user.ID.String(), user.Username)
	if err != nil {
		return "", err
	}

	if _, err := services.GetSessionService().CreateSession(
		ctx,
		user.ID,
		token,
		expiresAt,
		c.ClientIP(),
		c.Request.UserAgent(),
	); err != nil {
		return "", err
	}

	now := time.Now()
	if err := config.ConsoleGorm.WithContext(ctx).
		Model(user).
		Update("last_login_at", now).Error; err != nil {
		log.Printf("[auth] failed to update last login: %v", err)
	}
	user.LastLoginAt = &now

	setTokenCookie(c, token, int(time.Until(expiresAt).Seconds()))

	_ = services.LogActivity(services.LogActivityRequest{
		UserID:       user.ID,
		Username:     user.Username,
		Action:       "login",
		ResourceType: models.ResourceTypeUser,
		ResourceID:   user.ID.String(),
		ResourceName: user.Username,
		Context:      c,
	})
	return token, nil
}
