package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Rider-facing search messages
const (
	msgSchedulesFound  = "%d sefer bulundu"
	msgSchedulesEmpty  = "Bu güzergah için sefer bulunamadı"
	msgSchedulesFailed = "Seferler şu anda yüklenemiyor, lütfen tekrar deneyin"
)

// ScheduleService finds direct departures between two places
type ScheduleService struct {
	routes      *database.RouteRepository
	schedules   *database.ScheduleRepository
	location    *time.Location
	concurrency int
	now         func() time.Time
	logger      *logrus.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	routes *database.RouteRepository,
	schedules *database.ScheduleRepository,
	location *time.Location,
	concurrency int,
	logger *logrus.Logger,
) *ScheduleService {
	if location == nil {
		location = time.UTC
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &ScheduleService{
		routes:      routes,
		schedules:   schedules,
		location:    location,
		concurrency: concurrency,
		now:         time.Now,
		logger:      logger,
	}
}

// FindSchedules returns every departure of every route matching origin and destination, earliest first
func (s *ScheduleService) FindSchedules(ctx context.Context, req *models.SearchRequest) (*models.ScheduleSearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// locations come from the directory verbatim; only trim, never rewrite
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)

	log := s.logger.WithFields(logrus.Fields{
		"origin":      origin,
		"destination": destination,
	})

	routes, err := s.routes.FindByEndpoints(ctx, origin, destination)
	if err != nil {
		log.WithError(err).Error("Failed to find routes")
		return &models.ScheduleSearchResult{
			Status:  models.ResultFailed,
			Message: msgSchedulesFailed,
			Results: []models.ScheduleResult{},
		}, nil
	}

	perRoute := make([][]models.ScheduleResult, len(routes))
	failed := make([]bool, len(routes))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, route := range routes {
		g.Go(func() error {
			schedules, err := s.schedules.ListByRoute(ctx, route.ID)
			if err != nil {
				// one broken route must not hide the others
				log.WithError(err).WithField("route_id", route.ID).Warn("Skipping route, schedules unavailable")
				failed[i] = true
				return nil
			}

			rows := make([]models.ScheduleResult, 0, len(schedules))
			for _, sc := range schedules {
				rows = append(rows, models.ScheduleResult{
					ScheduleID:    sc.ID,
					Origin:        route.Origin,
					Destination:   route.Destination,
					DepartureTime: sc.DepartureTime,
					CompanyName:   route.CompanyOrUnknown(),
					Price:         sc.Price,
				})
			}
			perRoute[i] = rows
			return nil
		})
	}
	_ = g.Wait()

	results := []models.ScheduleResult{}
	failures := 0
	for i := range routes {
		if failed[i] {
			failures++
		}
		results = append(results, perRoute[i]...)
	}

	if len(routes) > 0 && failures == len(routes) {
		log.WithField("routes", len(routes)).Error("Schedules unavailable for every matched route")
		return &models.ScheduleSearchResult{
			Status:  models.ResultFailed,
			Message: msgSchedulesFailed,
			Results: results,
		}, nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DepartureTime < results[j].DepartureTime
	})

	now := s.now().In(s.location)
	for i := range results {
		countdown, err := models.NewCountdown(results[i].DepartureTime, now)
		if err != nil {
			log.WithError(err).WithField("schedule_id", results[i].ScheduleID).Debug("Unparseable departure time")
			continue
		}
		results[i].Countdown = countdown
	}

	status := models.StatusFor(len(results))
	message := msgSchedulesEmpty
	if status == models.ResultFound {
		message = fmt.Sprintf(msgSchedulesFound, len(results))
	}

	log.WithFields(logrus.Fields{
		"routes":   len(routes),
		"results":  len(results),
		"failures": failures,
	}).Info("Schedule search completed")

	return &models.ScheduleSearchResult{
		Status:  status,
		Message: message,
		Results: results,
	}, nil
}
