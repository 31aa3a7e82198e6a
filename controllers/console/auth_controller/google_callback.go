package auth_controller

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoogleCallback godoc
// @Summary Google sign-in callback
// @Description Verifies the state and ID token, then signs in the existing console user with that email. Accounts are never created here.
// @Tags Auth - Google
// @Success 307 "Redirect to the console"
// @Router /api/v1/auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if !config.GoogleEnabled() {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Google sign-in is not enabled"))
		return
	}

	state := c.Query("state")
	savedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != savedState {
		redirectWithError(c, "Invalid state token")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		redirectWithError(c, "No authorization code")
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 1: Exchange the code and verify the ID token
	oauthToken, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		log.Printf("[auth.google] exchange failed: %v", err)
		redirectWithError(c, "Failed to exchange token")
		return
	}
	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok {
		redirectWithError(c, "No ID token returned")
		return
	}
	idToken, err := config.OIDCVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		log.Printf("[auth.google] ID token verification failed: %v", err)
		redirectWithError(c, "Invalid ID token")
		return
	}

	var info models.GoogleUserInfo
	if err := idToken.Claims(&info); err != nil {
		redirectWithError(c, "Failed to read Google profile")
		return
	}
	if !info.EmailVerified || info.Email == "" {
		redirectWithError(c, "Google email is not verified")
		return
	}

	// Step 2: Only existing accounts may sign in
	var user models.User
	if err := config.ConsoleGorm.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(info.Email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			redirectWithError(c, "No console account uses this email")
			return
		}
		log.Printf("[auth.google] database error: %v", err)
		redirectWithError(c, "Server error")
		return
	}
	if user.Status == models.UserStatusDisabled {
		redirectWithError(c, "Account is disabled")
		return
	}

	if user.GoogleID == nil && info.Sub != "" {
		sub := info.Sub
		if err := config.ConsoleGorm.WithContext(ctx).Model(&user).Update("google_id", sub).Error; err != nil {
			log.Printf("[auth.google] failed to link google id: %v", err)
		}
	}

	if _, err := issueSession(c, &user); err != nil {
		log.Printf("[auth.google] failed to issue session: %v", err)
		redirectWithError(c, "Server error")
		return
	}

	log.Printf("[auth.google] success: %s", user.Username)
	c.Redirect(http.StatusTemporaryRedirect, config.App.ConsoleURL+"/dashboard")
}

func redirectWithError(c *gin.Context, message string) {
	log.Printf("[auth.google] %s", message)
	c.Redirect(http.StatusTemporaryRedirect, config.App.ConsoleURL+"/login?error="+url.QueryEscape(message))
}
