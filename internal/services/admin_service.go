package services

import (
	"context"
	"errors"
	"strings"

	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrUnknownCompany is returned when a route references a missing company
var ErrUnknownCompany = errors.New("company not found")

// AdminService backs the admin dashboard, schedule management and route creation
type AdminService struct {
	stats     *database.StatsRepository
	schedules *database.ScheduleRepository
	routes    *database.RouteRepository
	reports   *ReportService
	logger    *logrus.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	stats *database.StatsRepository,
	schedules *database.ScheduleRepository,
	routes *database.RouteRepository,
	reports *ReportService,
	logger *logrus.Logger,
) *AdminService {
	return &AdminService{
		stats:     stats,
		schedules: schedules,
		routes:    routes,
		reports:   reports,
		logger:    logger,
	}
}

// Dashboard returns the counters and the most recent unresolved reports
func (s *AdminService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	stats, err := s.stats.GetStats(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load dashboard stats")
		return nil, err
	}

	recent, err := s.reports.Recent(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{Stats: *stats, RecentReports: recent}, nil
}

// ListSchedules returns departures with their route and company, earliest first
func (s *AdminService) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleWithRoute, error) {
	filter.Origin = strings.TrimSpace(filter.Origin)
	filter.Destination = strings.TrimSpace(filter.Destination)

	schedules, err := s.schedules.ListWithRoutes(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list schedules")
		return nil, err
	}
	return schedules, nil
}

// DeleteSchedule removes a departure
func (s *AdminService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	id, err := parseID(scheduleID, "Schedule ID")
	if err != nil {
		return err
	}

	if err := s.schedules.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("schedule_id", id).Error("Failed to delete schedule")
		return err
	}

	s.logger.WithField("schedule_id", id).Info("Schedule deleted")
	return nil
}

// CreateRoute stores a route with normalized place names
func (s *AdminService) CreateRoute(ctx context.Context, req *models.CreateRouteRequest) (*models.Route, error) {
	origin := models.NormalizePlaceName(req.Origin)
	destination := models.NormalizePlaceName(req.Destination)
	if origin == "" {
		return nil, models.ErrInvalidInput("Origin is required")
	}
	if destination == "" {
		return nil, models.ErrInvalidInput("Destination is required")
	}

	companyID, err := parseID(req.CompanyID, "Company ID")
	if err != nil {
		return nil, err
	}

	exists, err := s.routes.CompanyExists(ctx, companyID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check company")
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownCompany
	}

	route := &models.Route{
		Origin:      origin,
		Destination: destination,
		RouteName:   trimOptional(req.RouteName),
		RouteNumber: trimOptional(req.RouteNumber),
		CompanyID:   &companyID,
	}

	created, err := s.routes.Create(ctx, route)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create route")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"route_id":    created.ID,
		"origin":      created.Origin,
		"destination": created.Destination,
	}).Info("Route created")
	return created, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := models.NormalizePlaceName(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
