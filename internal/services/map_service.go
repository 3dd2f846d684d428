package services

import (
	"context"
	"errors"

	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/geo"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/pkg/osrm"
	"github.com/sirupsen/logrus"
)

// DefaultMapCenter is shown when there is nothing to fit the viewport to
var DefaultMapCenter = geo.Point{Lat: 35.1856, Lon: 33.3823}

var (
	// ErrNoStops is returned when no stop has coordinates
	ErrNoStops = errors.New("no stops with coordinates")

	// ErrRoutingUnavailable wraps routing service failures
	ErrRoutingUnavailable = errors.New("routing service unavailable")
)

// Router fetches a driving polyline between two points
type Router interface {
	Route(ctx context.Context, from, to osrm.Coordinate) (*osrm.Route, error)
}

// MapService supplies map markers, nearest-stop matching and route polylines
type MapService struct {
	stops  *database.StopRepository
	router Router
	logger *logrus.Logger
}

// NewMapService creates a new map service
func NewMapService(stops *database.StopRepository, router Router, logger *logrus.Logger) *MapService {
	return &MapService{
		stops:  stops,
		router: router,
		logger: logger,
	}
}

// Stops returns every stop that can be drawn on the map
func (s *MapService) Stops(ctx context.Context) ([]models.Stop, error) {
	stops, err := s.stops.ListWithCoordinates(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load map stops")
		return nil, err
	}
	return stops, nil
}

// NearestStop returns the stop closest to the user and a viewport bounding both
func (s *MapService) NearestStop(ctx context.Context, user geo.Point) (*models.NearestStop, error) {
	// negated form so NaN fails too
	if !(user.Lat >= -90 && user.Lat <= 90 && user.Lon >= -180 && user.Lon <= 180) {
		return nil, models.ErrInvalidInput("Coordinates out of range")
	}

	stops, err := s.Stops(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]geo.Point, 0, len(stops))
	candidates := make([]models.Stop, 0, len(stops))
	for _, stop := range stops {
		if !stop.HasCoordinates() {
			continue
		}
		points = append(points, geo.Point{Lat: *stop.Latitude, Lon: *stop.Longitude})
		candidates = append(candidates, stop)
	}

	idx, distance, ok := geo.Nearest(user, points)
	if !ok {
		return nil, ErrNoStops
	}

	return &models.NearestStop{
		Stop:       candidates[idx],
		DistanceKm: distance,
		Bounds:     geo.BoundsOf(user, points[idx]),
	}, nil
}

// RouteLine returns the driving path between two points
func (s *MapService) RouteLine(ctx context.Context, from, to geo.Point) (*osrm.Route, error) {
	route, err := s.router.Route(ctx,
		osrm.Coordinate{Lat: from.Lat, Lon: from.Lon},
		osrm.Coordinate{Lat: to.Lat, Lon: to.Lon})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"from": from,
			"to":   to,
		}).Warn("Routing request failed")
		if errors.Is(err, osrm.ErrNoRoute) {
			return nil, err
		}
		return nil, errors.Join(ErrRoutingUnavailable, err)
	}
	return route, nil
}
