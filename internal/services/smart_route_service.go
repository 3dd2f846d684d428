package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	msgSmartRoutesFound  = "%d güzergah bulundu"
	msgSmartRoutesEmpty  = "Aktarmalı veya direkt güzergah bulunamadı"
	msgSmartRoutesFailed = "Akıllı rota araması şu anda yapılamıyor"
)

// SmartRouteService delegates itinerary search to the get_smart_routes procedure
type SmartRouteService struct {
	repo     *database.SmartRouteRepository
	location *time.Location
	now      func() time.Time
	logger   *logrus.Logger
}

// NewSmartRouteService creates a new smart route service
func NewSmartRouteService(repo *database.SmartRouteRepository, location *time.Location, logger *logrus.Logger) *SmartRouteService {
	if location == nil {
		location = time.UTC
	}
	return &SmartRouteService{
		repo:     repo,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// FindSmartRoutes returns direct and transfer itineraries from origin to destination departing after start time.
// An empty start time means now.
func (s *SmartRouteService) FindSmartRoutes(ctx context.Context, req *models.SearchRequest) (*models.SmartRouteSearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)

	startTime := s.now().In(s.location).Format("15:04:05")
	if strings.TrimSpace(req.StartTime) != "" {
		normalized, err := models.NormalizeClock(req.StartTime)
		if err != nil {
			return nil, models.ErrInvalidInput("start_time must be HH:MM or HH:MM:SS")
		}
		startTime = normalized
	}

	log := s.logger.WithFields(logrus.Fields{
		"origin":      origin,
		"destination": destination,
		"start_time":  startTime,
	})

	routes, err := s.repo.FindSmartRoutes(ctx, origin, destination, startTime)
	if err != nil {
		failure := "query_error"
		if errors.Is(err, database.ErrProcedureNotFound) {
			failure = "procedure_missing"
		}
		log.WithError(err).WithField("failure", failure).Error("Smart route search failed")
		return &models.SmartRouteSearchResult{
			Status:    models.ResultFailed,
			Message:   msgSmartRoutesFailed,
			StartTime: startTime,
			Routes:    []models.SmartRoute{},
		}, nil
	}

	if len(routes) == 0 {
		log.WithField("failure", "no_routes").Info("Smart route search returned no itineraries")
		return &models.SmartRouteSearchResult{
			Status:    models.ResultEmpty,
			Message:   msgSmartRoutesEmpty,
			StartTime: startTime,
			Routes:    routes,
		}, nil
	}

	log.WithField("routes", len(routes)).Info("Smart route search completed")
	return &models.SmartRouteSearchResult{
		Status:    models.ResultFound,
		Message:   fmt.Sprintf(msgSmartRoutesFound, len(routes)),
		StartTime: startTime,
		Routes:    routes,
	}, nil
}
