package dashboard_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoFeed godoc
// @Summary Live MJPEG stream of a camera
// @Description multipart/x-mixed-replace stream. Browsers load it from an img tag, so the token may be sent as ?token=. A "No signal" frame is sent while the camera publishes nothing.
// @Tags Dashboard
// @Produce multipart/x-mixed-replace
// @Security BearerAuth
// @Param cameraId path string true "Camera ID"
// @Param token query string false "JWT when headers cannot be sent"
// @Success 200 {file} binary
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Camera is inactive"
// @Router /api/v1/video_feed/{cameraId} [get]
func VideoFeed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("cameraId"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Camera not found"))
		return
	}

	ctx, cancel := config.WithTimeout()
	var camera models.Camera
	err = config.ConsoleGorm.WithContext(ctx).
		Select("id", "name", "status", "access_level").
		First(&camera, "id = ?", id).Error
	cancel()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Camera not found"))
			return
		}
		log.Printf("[feed] failed to load camera %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to open feed"))
		return
	}

	if !camera.IsActive() {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Camera is inactive"))
		return
	}
	if !services.CanViewCamera(middleware.GetRole(c), camera.AccessLevel) {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - admin only camera"))
		return
	}

	c.Header("Content-Type", services.MJPEGContentType)
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	log.Printf("[feed] %s watching %s", c.GetString(middleware.CtxUsername), camera.Name)
	err = services.GetFeedHub().Stream(c.Request.Context(), c.Writer, camera.ID, services.StreamOptions{
		Label:      camera.Name,
		Keepalive:  config.App.FeedKeepalive,
		StaleAfter: config.App.FeedStaleAfter,
		Flush:      c.Writer.Flush,
	})
	if err != nil {
		log.Printf("[feed] stream of %s ended: %v", camera.Name, err)
	}
}
