package dashboard_controller

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errEmptyFrame = errors.New("Frame is empty")
	errNotJPEG    = errors.New("Frame must be a JPEG image")
	errFrameLarge = errors.New("Frame is too large")
)

// jpegMagic is the SOI marker every JPEG starts with
var jpegMagic = []byte{0xFF, 0xD8}

// PublishFrame godoc
// @Summary Push a camera frame
// @Description Called by analytics workers. The body is a raw JPEG (image/jpeg) or a multipart "frame" file.
// @Tags Dashboard
// @Accept image/jpeg,mpfd
// @Produce json
// @Param X-Worker-Key header string true "Worker API key"
// @Param cameraId path string true "Camera ID"
// @Success 202 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/video_feed/{cameraId}/frames [post]
func PublishFrame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("cameraId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid camera ID"))
		return
	}

	frame, err := readFrame(c, config.App.MaxImageBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	records, err := services.LoadCameraRecords(ctx)
	if err != nil {
		log.Printf("[feed.publish] failed to load cameras: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to publish frame"))
		return
	}
	if !knownCamera(records, id) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Camera not found"))
		return
	}

	services.GetFeedHub().Publish(id, frame)
	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "Frame accepted", gin.H{
		"viewers": services.GetFeedHub().Viewers(id),
	}))
}

// readFrame takes the JPEG from a multipart "frame" field or the raw body
func readFrame(c *gin.Context, maxBytes int64) ([]byte, error) {
	var src io.Reader = c.Request.Body
	if fh, err := c.FormFile("frame"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, err
	}
	switch {
	case len(data) == 0:
		return nil, errEmptyFrame
	case int64(len(data)) > maxBytes:
		return nil, errFrameLarge
	case !bytes.HasPrefix(data, jpegMagic):
		return nil, errNotJPEG
	}
	return data, nil
}

func knownCamera(records []models.CameraRecord, id uuid.UUID) bool {
	want := id.String()
	for _, r := range records {
		if r.ID == want {
			return true
		}
	}
	return false
}
