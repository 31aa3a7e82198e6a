package auth_controller

import (
	"net/http"
	"os"

	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/gin-gonic/gin"
)

func setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.TokenCookie,
		token,
		maxAge,
		"/",
		"",
		os.Getenv("APP_ENV") == "production",
		true,
	)
}

// ClearTokenCookie expires the console_token cookie
func ClearTokenCookie(c *gin.Context) {
	setTokenCookie(c, "", -1)
}
