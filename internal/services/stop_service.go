package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// StopService manages map stops for the admin panel
type StopService struct {
	repo   *database.StopRepository
	logger *logrus.Logger
}

// NewStopService creates a new stop service
func NewStopService(repo *database.StopRepository, logger *logrus.Logger) *StopService {
	return &StopService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every stop ordered by name
func (s *StopService) List(ctx context.Context) ([]models.Stop, error) {
	return s.repo.List(ctx)
}

// Create validates and inserts a stop
func (s *StopService) Create(ctx context.Context, req *models.CreateStopRequest) (*models.Stop, error) {
	in := models.StopInput{Name: req.Name, Latitude: req.Latitude, Longitude: req.Longitude}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	stop, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.WithError(err).WithField("name", in.Name).Error("Failed to create stop")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"stop_id": stop.ID, "name": stop.Name}).Info("Stop created")
	return stop, nil
}

// Update validates and replaces a stop's fields
func (s *StopService) Update(ctx context.Context, req *models.UpdateStopRequest) (*models.Stop, error) {
	id, err := parseID(req.StopID, "Stop ID")
	if err != nil {
		return nil, err
	}

	in := models.StopInput{Name: req.Name, Latitude: req.Latitude, Longitude: req.Longitude}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	stop, err := s.repo.Update(ctx, id, in)
	if err != nil {
		s.logger.WithError(err).WithField("stop_id", id).Error("Failed to update stop")
		return nil, err
	}

	s.logger.WithField("stop_id", id).Info("Stop updated")
	return stop, nil
}

// Delete removes a stop
func (s *StopService) Delete(ctx context.Context, stopID string) error {
	id, err := parseID(stopID, "Stop ID")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("stop_id", id).Error("Failed to delete stop")
		return err
	}

	s.logger.WithField("stop_id", id).Info("Stop deleted")
	return nil
}

// parseID turns a required id field into a uuid, reporting caller errors by field label
func parseID(value, label string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, models.ErrInvalidInput(label + " is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, models.ErrInvalidInput("Invalid " + label)
	}
	return id, nil
}
