package dashboard_controller

import (
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

// GetDashboardOptions godoc
// @Summary Cascading options for the live camera filter
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param region query string false "Selected region"
// @Param sub_region query string false "Selected sub-region"
// @Param camera query string false "Selected camera"
// @Param level query string false "Dropdown that just changed (region, sub_region, camera); values below it are dropped"
// @Success 200 {object} models.ApiResponse{data=models.CascadeOptions}
// @Router /api/v1/dashboard/options [get]
func GetDashboardOptions(c *gin.Context) {
	feeds, ok := visibleFeeds(c)
	if !ok {
		return
	}
	options := models.BuildCascadeOptions(models.FeedCascade, feeds, models.SelectionFromQuery(c))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Options fetched", options))
}
