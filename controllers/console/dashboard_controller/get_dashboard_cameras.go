package dashboard_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// GetDashboardCameras godoc
// @Summary Active cameras for the live dashboard
// @Description Admin-only cameras are hidden from User accounts. Optional region, sub_region and camera narrow the list.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param region query string false "Selected region"
// @Param sub_region query string false "Selected sub-region"
// @Param camera query string false "Selected camera"
// @Success 200 {object} models.ApiResponse{data=[]models.CameraFeed}
// @Router /api/v1/dashboard/cameras [get]
func GetDashboardCameras(c *gin.Context) {
	feeds, ok := visibleFeeds(c)
	if !ok {
		return
	}

	sel := models.FeedCascade.Prune(feeds, models.SelectionFromQuery(c))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cameras fetched", models.FeedCascade.Apply(feeds, sel)))
}

// visibleFeeds loads the cached feed list filtered for the caller; writes the error response itself
func visibleFeeds(c *gin.Context) ([]models.CameraFeed, bool) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	feeds, err := services.LoadActiveFeeds(ctx)
	if err != nil {
		log.Printf("[dashboard] failed to load feeds: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch cameras"))
		return nil, false
	}
	return services.VisibleFeeds(feeds, middleware.GetRole(c)), true
}
