package auth_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

// GoogleLogin godoc
// @Summary Redirect to Google sign-in
// @Description Stores a state token in a cookie and redirects to Google's consent page
// @Tags Auth - Google
// @Success 307 "Redirect to Google"
// @Failure 404 {object} models.ApiResponse "Google sign-in not configured"
// @Router /api/v1/auth/google/login [get]
func GoogleLogin(c *gin.Context) {
	if !config.GoogleEnabled() {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Google sign-in is not enabled"))
		return
	}

	state := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)

	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	log.Printf("[auth.google] redirecting to consent page")
	c.Redirect(http.StatusTemporaryRedirect, url)
}
