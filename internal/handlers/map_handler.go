package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/geo"
	"github.com/kktculasim/ulasim-backend/internal/services"
	"github.com/kktculasim/ulasim-backend/pkg/osrm"
	"github.com/sirupsen/logrus"
)

// MapHandler serves stop markers, nearest-stop lookups and route polylines
type MapHandler struct {
	service *services.MapService
	logger  *logrus.Logger
}

// NewMapHandler creates a new map handler
func NewMapHandler(service *services.MapService, logger *logrus.Logger) *MapHandler {
	return &MapHandler{
		service: service,
		logger:  logger,
	}
}

// GetStops handles GET /api/stops
func (h *MapHandler) GetStops(c *gin.Context) {
	stops, err := h.service.Stops(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to load stops")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stops":  stops,
		"center": services.DefaultMapCenter,
	})
}

// GetNearestStop handles GET /api/stops/nearest?lat=&lon=
func (h *MapHandler) GetNearestStop(c *gin.Context) {
	user, ok := queryPoint(c, "lat", "lon")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lon are required numbers"})
		return
	}

	nearest, err := h.service.NearestStop(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, services.ErrNoStops) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No stops with coordinates"})
			return
		}
		respondError(c, h.logger, err, "Failed to find nearest stop")
		return
	}

	c.JSON(http.StatusOK, nearest)
}

// GetRouteLine handles GET /api/map/route?from_lat=&from_lon=&to_lat=&to_lon=
func (h *MapHandler) GetRouteLine(c *gin.Context) {
	from, okFrom := queryPoint(c, "from_lat", "from_lon")
	to, okTo := queryPoint(c, "to_lat", "to_lon")
	if !okFrom || !okTo {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from_lat, from_lon, to_lat and to_lon are required numbers"})
		return
	}

	route, err := h.service.RouteLine(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, osrm.ErrNoRoute) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No route found"})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Routing service unavailable"})
		return
	}

	c.JSON(http.StatusOK, route)
}

func queryPoint(c *gin.Context, latKey, lonKey string) (geo.Point, bool) {
	lat, ok := queryFloat(c, latKey)
	if !ok {
		return geo.Point{}, false
	}
	lon, ok := queryFloat(c, lonKey)
	if !ok {
		return geo.Point{}, false
	}
	return geo.Point{Lat: lat, Lon: lon}, true
}

// queryFloat parses a finite float; ParseFloat accepts "NaN" and "Inf"
func queryFloat(c *gin.Context, key string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
