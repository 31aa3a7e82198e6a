package detection_controller

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// CreateDetection godoc
// @Summary Record a detection
// @Description Called by analytics workers (X-Worker-Key) or signed-in consoles. JSON, or multipart with an optional snapshot image.
// @Tags Detections
// @Accept json,mpfd
// @Produce json
// @Param X-Worker-Key header string false "Worker API key"
// @Param body body models.DetectionEvent true "Detection"
// @Success 201 {object} models.ApiResponse{data=models.DetectionRow}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Camera not found"
// @Router /api/v1/detections [post]
func CreateDetection(c *gin.Context) {
	var ev models.DetectionEvent
	if err := c.ShouldBind(&ev); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "camera_id and alert_type are required"))
		return
	}
	if err := services.ValidateDetectionEvent(&ev); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	var snapshot io.Reader
	if fh, err := c.FormFile("snapshot"); err == nil {
		if err := services.ValidateImageUpload(fh.Filename, fh.Size, config.App.MaxImageBytes); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Failed to read snapshot"))
			return
		}
		defer f.Close()
		snapshot = f
	}

	ctx, cancel := config.WithCustomTimeout(30 * time.Second)
	defer cancel()

	detection, err := services.GetDetectionService().Ingest(ctx, ev, services.DetectionSourceHTTP, snapshot)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownCamera):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, err.Error()))
		case isInputError(err):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		default:
			log.Printf("[detection.create] failed to store detection: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to record detection"))
		}
		return
	}

	c.Set(models.CtxCreatedResourceID, detection.ID.String())
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Detection recorded", detection.ToRow()))
}
