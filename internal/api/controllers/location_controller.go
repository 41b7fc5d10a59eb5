package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moments/internal/services"
	"moments/pkg/utils"
)

type LocationController struct {
	locationService services.LocationServiceInterface
}

func NewLocationController(locationService services.LocationServiceInterface) *LocationController {
	return &LocationController{locationService: locationService}
}

// Geocode godoc
// @Summary Resolve an address to coordinates
// @Tags Locations
// @Produce json
// @Param address query string true "Free-form address"
// @Success 200 {object} response_models.Coordinates
// @Failure 404 {object} utils.APIResponse
// @Router /api/geocode [get]
func (l *LocationController) Geocode(c *gin.Context) {
	coords, err := l.locationService.Geocode(c.Request.Context(), c.Query("address"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, coords)
}

// ListLocations godoc
// @Summary Every activity that has a resolvable address
// @Tags Locations
// @Produce json
// @Success 200 {array} response_models.ActivityLocation
// @Router /api/locations [get]
func (l *LocationController) ListLocations(c *gin.Context) {
	locations, err := l.locationService.ListLocations(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, locations)
}
