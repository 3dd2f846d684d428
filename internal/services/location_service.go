package services

import (
	"context"
	"sort"
	"strings"

	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// LocationService derives the place names offered by the search form
type LocationService struct {
	routes *database.RouteRepository
	logger *logrus.Logger
}

// NewLocationService creates a new location service
func NewLocationService(routes *database.RouteRepository, logger *logrus.Logger) *LocationService {
	return &LocationService{
		routes: routes,
		logger: logger,
	}
}

// ListLocations returns every distinct, trimmed origin and destination, sorted ascending
func (s *LocationService) ListLocations(ctx context.Context) *models.LocationsResult {
	endpoints, err := s.routes.ListEndpoints(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load locations")
		return &models.LocationsResult{Status: models.ResultFailed, Locations: []string{}}
	}

	set := make(map[string]struct{}, len(endpoints)*2)
	add := func(name *string) {
		if name == nil {
			return
		}
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	for _, e := range endpoints {
		add(e.Origin)
		add(e.Destination)
	}

	locations := make([]string, 0, len(set))
	for name := range set {
		locations = append(locations, name)
	}
	sort.Strings(locations)

	return &models.LocationsResult{Status: models.StatusFor(len(locations)), Locations: locations}
}
