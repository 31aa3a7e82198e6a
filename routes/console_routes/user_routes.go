package console_routes

import (
	"github.com/Asadel-Surveillance/asadel-console/controllers/console/user_controller"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers user management and the self-service /users/me
func SetupUserRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/users/me")
	me.Use(
		middleware.ConsoleAuthMiddleware(),
		middleware.ActivityLoggingMiddleware(),
	)
	{
		me.GET("", user_controller.GetMyProfile)
		me.PUT("", user_controller.UpdateMyProfile)
		me.DELETE("", user_controller.DeleteMyAccount)
	}

	users := rg.Group("/users")
	users.Use(
		middleware.ConsoleAuthMiddleware(),
		middleware.RequireModule(models.ModuleUserManagement),
		middleware.ActivityLoggingMiddleware(),
	)
	{
		users.GET("", user_controller.GetUsers)
		users.GET("/:id", user_controller.GetUserByID)
		users.POST("", user_controller.CreateUser)
		users.PUT("/:id", user_controller.UpdateUserAccess)
		users.DELETE("/:id", user_controller.DeleteUser)
	}
}
