package detection_controller

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DownloadReport godoc
// @Summary Export the log report
// @Description Renders every detection matching the filters, newest first
// @Tags Detections
// @Produce application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "pdf or xlsx" default(pdf)
// @Param region query string false "Region name"
// @Param sub_region query string false "Sub-region name"
// @Param camera query string false "Camera name"
// @Param alert_type query string false "Fire or Smoke"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {file} binary
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/detections/report [get]
func DownloadReport(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "pdf"))
	if format != "pdf" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "format must be pdf or xlsx"))
		return
	}
	q, err := bindQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid filter"))
		return
	}

	ctx, cancel := config.WithCustomTimeout(30 * time.Second)
	defer cancel()

	query, err := services.ScopeDetections(config.ConsoleGorm.WithContext(ctx).Model(&models.Detection{}), q)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	var detections []models.Detection
	if err := query.Order("detected_at DESC").Limit(maxReportRows).Find(&detections).Error; err != nil {
		log.Printf("[detection.report] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build report"))
		return
	}
	rows := make([]models.DetectionRow, len(detections))
	for i := range detections {
		rows[i] = detections[i].ToRow()
	}

	now := time.Now()
	var (
		buf         *bytes.Buffer
		contentType string
	)
	if format == "xlsx" {
		buf, err = services.GenerateDetectionReportXLSX(rows, q)
		contentType = xlsxContentType
	} else {
		buf, err = services.GenerateDetectionReportPDF(rows, q, now)
		contentType = "application/pdf"
	}
	if err != nil {
		log.Printf("[detection.report] failed to render %s: %v", format, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build report"))
		return
	}

	log.Printf("[detection.report] %s exported %d rows as %s", c.GetString("username"), len(rows), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.ReportFilename(format, now)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
