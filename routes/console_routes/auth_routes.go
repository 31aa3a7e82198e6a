package console_routes

import (
	"time"

	"github.com/Asadel-Surveillance/asadel-console/controllers/console/auth_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers sign-in, sign-out and Google OAuth
func SetupAuthRoutes(rg *gin.RouterGroup) {
	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════

	rg.POST("/login", middleware.RateLimiter(10, time.Minute), auth_controller.Login)

	google := rg.Group("/auth/google")
	{
		google.GET("/login", auth_controller.GoogleLogin)
		google.GET("/callback", auth_controller.GoogleCallback)
	}

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth Required)
	// ════════════════════════════════════════════════════════════

	protected := rg.Group("")
	protected.Use(middleware.ConsoleAuthMiddleware())
	{
		protected.POST("/logout", auth_controller.Logout)
		protected.GET("/me", auth_controller.GetMe)
	}
}
