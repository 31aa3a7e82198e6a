package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// WorkerKeyHeader authenticates analytics workers pushing frames and detections
const WorkerKeyHeader = "X-Worker-Key"

const ctxWorker = "worker"

// WorkerOrConsoleAuth accepts a matching X-Worker-Key (when WORKER_API_KEY is
// set) and falls back to console authentication otherwise
func WorkerOrConsoleAuth() gin.HandlerFunc {
	consoleAuth := ConsoleAuthMiddleware()
	return func(c *gin.Context) {
		expected := os.Getenv("WORKER_API_KEY")
		given := c.GetHeader(WorkerKeyHeader)
		if expected != "" && given != "" &&
			subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1 {
			c.Set(ctxWorker, true)
			c.Next()
			return
		}
		consoleAuth(c)
	}
}

// IsWorker reports whether the request was authenticated by worker key
func IsWorker(c *gin.Context) bool {
	return c.GetBool(ctxWorker)
}

// RequireWorkerOrAdmin follows WorkerOrConsoleAuth on worker push routes.
// Console callers must be Admin.
func RequireWorkerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsWorker(c) || IsAdmin(c) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - worker key or admin access required"))
	}
}
