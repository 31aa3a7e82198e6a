package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/Asadel-Surveillance/asadel-console/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenCookie carries the console JWT for browser sessions
const TokenCookie = "console_token"

// Context keys set by ConsoleAuthMiddleware
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "userRole"
	CtxAccess   = "userAccess"
	CtxToken    = "token"
	CtxClaims   = "claims"
)

// loadUser is swapped in tests
var loadUser = func(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := config.ConsoleGorm.WithContext(ctx).
		Select("id", "username", "role", "access_level", "status").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// isRevoked is swapped in tests
var isRevoked = func(ctx context.Context, tokenHash string) (bool, error) {
	return services.GetSessionService().IsTokenRevoked(ctx, tokenHash)
}

// requestToken reads the token from the Authorization header, then the
// cookie, then ?token= (MJPEG <img> tags cannot send headers)
func requestToken(c *gin.Context) (string, string) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, err := utils.ExtractBearerToken(header)
		if err != nil {
			return "", "Unauthorized - invalid token format"
		}
		return token, ""
	}
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token, ""
	}
	if token := strings.TrimSpace(c.Query("token")); token != "" {
		return token, ""
	}
	return "", "Unauthorized - no token provided"
}

// ConsoleAuthMiddleware validates the console JWT and loads the caller's role and access
func ConsoleAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := requestToken(c)
		if problem != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, problem))
			return
		}

		claims, err := services.VerifyConsoleJWT(token)
		if err != nil {
			log.Printf("[auth] invalid token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		tokenHash := services.HashToken(token)
		revoked, err := isRevoked(ctx, tokenHash)
		if err != nil {
			log.Printf("[auth] revocation check failed: %v", err)
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - session ended"))
			return
		}

		user, err := loadUser(ctx, userID)
		if err != nil {
			log.Printf("[auth] failed to load user %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - user not found"))
			return
		}
		if user.Status == models.UserStatusDisabled {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - account disabled"))
			return
		}

		if config.ConsoleGorm != nil {
			if err := services.GetSessionService().UpdateSessionActivity(ctx, tokenHash); err != nil {
				log.Printf("[auth] failed to update session activity: %v", err)
			}
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUsername, user.Username)
		c.Set(CtxRole, models.NormalizeRole(user.Role))
		c.Set(CtxAccess, []string(user.AccessLevel))
		c.Set(CtxToken, token)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetRole returns the authenticated user's normalized role
func GetRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}

// GetAccess returns the authenticated user's stored access labels
func GetAccess(c *gin.Context) []string {
	v, ok := c.Get(CtxAccess)
	if !ok {
		return nil
	}
	access, _ := v.([]string)
	return access
}

// IsAdmin reports whether the caller holds the Admin role
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == models.RoleAdmin
}
