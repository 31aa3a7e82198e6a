package auth_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// Logout godoc
// @Summary Sign out
// @Description Ends the current session and deny-lists its token until it would have expired
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/logout [post]
func Logout(c *gin.Context) {
	if err := EndSession(c); err != nil {
		log.Printf("[auth.logout] failed to end session: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	userID, username := services.ActorFromContext(c)
	services.LogFromContext(c, "logout", models.ResourceTypeUser, userID.String(), username, nil)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out successfully", nil))
}

// EndSession revokes the caller's token and clears the cookie
func EndSession(c *gin.Context) error {
	token := c.GetString(middleware.CtxToken)
	expiresAt := time.Now().Add(services.GetJWTService().Expiry())
	if v, ok := c.Get(middleware.CtxClaims); ok {
		if claims, ok := v.(*services.ConsoleJWTClaims); ok && claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := services.GetSessionService().DeactivateSession(ctx, token, expiresAt); err != nil {
		return err
	}
	ClearTokenCookie(c)
	return nil
}
