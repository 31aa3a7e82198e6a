package detection_controller

import (
	"errors"
	"strconv"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// maxReportRows caps a single exported report
const maxReportRows = 10000

// bindQuery reads the log report filter and trims the cascade fields
func bindQuery(c *gin.Context) (models.DetectionQuery, error) {
	var q models.DetectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, err
	}
	sel := models.SelectionFromQuery(c)
	q.Region, q.SubRegion, q.Camera = sel.Region, sel.SubRegion, sel.Leaf
	return q, nil
}

// pageParams clamps oversized limits to detections.max_page
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.App.PageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.App.PageSize
	}
	if limit > config.App.DetectionMaxPage {
		limit = config.App.DetectionMaxPage
	}
	return page, limit
}

// isInputError reports detection errors caused by the request
func isInputError(err error) bool {
	return errors.Is(err, services.ErrUnknownAlertType) ||
		errors.Is(err, services.ErrLowConfidence) ||
		errors.Is(err, services.ErrInvalidDate)
}
