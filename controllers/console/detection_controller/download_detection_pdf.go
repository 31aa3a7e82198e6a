package detection_controller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// DownloadDetectionPDF godoc
// @Summary Single detection as PDF
// @Tags Detections
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Detection ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/detections/{id}/pdf [get]
func DownloadDetectionPDF(c *gin.Context) {
	detection, ok := findDetection(c)
	if !ok {
		return
	}

	pdf, err := services.GenerateDetectionPDF(detection)
	if err != nil {
		log.Printf("[detection.pdf] failed to render %s: %v", detection.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate PDF"))
		return
	}

	filename := fmt.Sprintf("detection-%s.pdf", detection.ID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}
