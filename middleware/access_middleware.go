package middleware

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// RequireModule lets Admins through, and Users whose access list grants module
func RequireModule(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !services.HasModuleAccess(GetRole(c), GetAccess(c), module) {
			log.Printf("[auth] %s denied %s", c.GetString(CtxUsername), module)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - "+module+" access required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin checks if the caller holds the Admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			log.Printf("[auth] non-admin %s attempted restricted action", c.GetString(CtxUsername))
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - admin access required"))
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin guards /:id routes a user may only call for their own account
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := GetUserID(c)
		if IsAdmin(c) || c.Param(param) == userID.String() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - you can only change your own settings"))
	}
}
