package area_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// GetRegionsList godoc
// @Summary Region dropdown data
// @Description Flat region list with nested sub-regions for the camera form dropdowns
// @Tags Areas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.RegionListItem}
// @Router /api/v1/regions-list [get]
func GetRegionsList(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	regions, err := services.LoadRegionTree(ctx)
	if err != nil {
		log.Printf("[area.regions-list] failed to fetch regions: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch regions"))
		return
	}

	items := make([]models.RegionListItem, len(regions))
	for i := range regions {
		items[i] = regions[i].ToListItem()
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Regions fetched", items))
}
