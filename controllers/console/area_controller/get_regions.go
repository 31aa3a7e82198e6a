package area_controller

import (
	"log"
	"net/http"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
)

// GetRegions godoc
// @Summary List regions with sub-regions
// @Description Area management table: every region with its sub-regions, name ordered
// @Tags Areas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.RegionResponse}
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/regions [get]
func GetRegions(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	regions, err := services.LoadRegionTree(ctx)
	if err != nil {
		log.Printf("[area.list] failed to fetch regions: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch regions"))
		return
	}

	response := make([]models.RegionResponse, len(regions))
	for i := range regions {
		response[i] = regions[i].ToResponse()
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Regions fetched", response))
}
