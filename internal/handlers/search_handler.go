package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// SearchHandler handles rider search requests
type SearchHandler struct {
	locations   *services.LocationService
	schedules   *services.ScheduleService
	smartRoutes *services.SmartRouteService
	logger      *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(
	locations *services.LocationService,
	schedules *services.ScheduleService,
	smartRoutes *services.SmartRouteService,
	logger *logrus.Logger,
) *SearchHandler {
	return &SearchHandler{
		locations:   locations,
		schedules:   schedules,
		smartRoutes: smartRoutes,
		logger:      logger,
	}
}

// GetLocations handles GET /api/locations
// @Summary List known places
// @Tags Search
// @Produce json
// @Success 200 {object} models.LocationsResult
// @Failure 503 {object} models.LocationsResult "Backend unavailable"
// @Router /api/locations [get]
func (h *SearchHandler) GetLocations(c *gin.Context) {
	result := h.locations.ListLocations(c.Request.Context())
	c.JSON(statusForResult(result.Status), result)
}

// GetSchedules handles GET /api/schedules
// @Summary Find direct departures
// @Tags Search
// @Produce json
// @Param origin query string true "Origin place"
// @Param destination query string true "Destination place"
// @Success 200 {object} models.ScheduleSearchResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} models.ScheduleSearchResult "Backend unavailable"
// @Router /api/schedules [get]
func (h *SearchHandler) GetSchedules(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	result, err := h.schedules.FindSchedules(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to search schedules")
		return
	}

	c.JSON(statusForResult(result.Status), result)
}

// GetSmartRoutes handles GET /api/smart-routes
// @Summary Find direct and transfer itineraries
// @Tags Search
// @Produce json
// @Param origin query string true "Origin place"
// @Param destination query string true "Destination place"
// @Param start_time query string false "Earliest departure, HH:MM[:SS]; defaults to now"
// @Success 200 {object} models.SmartRouteSearchResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} models.SmartRouteSearchResult "Backend unavailable"
// @Router /api/smart-routes [get]
func (h *SearchHandler) GetSmartRoutes(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	result, err := h.smartRoutes.FindSmartRoutes(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to search smart routes")
		return
	}

	c.JSON(statusForResult(result.Status), result)
}
