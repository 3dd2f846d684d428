package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/models"
)

// StopRepository handles database operations for map stops
type StopRepository struct {
	db DB
}

// NewStopRepository creates a new stop repository
func NewStopRepository(db DB) *StopRepository {
	return &StopRepository{db: db}
}

// List returns every stop ordered by name
func (r *StopRepository) List(ctx context.Context) ([]models.Stop, error) {
	stops := []models.Stop{}
	query := `SELECT id, name, latitude, longitude FROM stops ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &stops, query); err != nil {
		return nil, fmt.Errorf("error listing stops: %w", err)
	}
	return stops, nil
}

// ListWithCoordinates returns only stops that can be placed on a map
func (r *StopRepository) ListWithCoordinates(ctx context.Context) ([]models.Stop, error) {
	query := `
		SELECT id, name, latitude, longitude
		FROM stops
		WHERE latitude IS NOT NULL
		  AND longitude IS NOT NULL
		ORDER BY name ASC
	`

	stops := []models.Stop{}
	if err := r.db.SelectContext(ctx, &stops, query); err != nil {
		return nil, fmt.Errorf("error listing stops with coordinates: %w", err)
	}
	return stops, nil
}

// Create inserts a stop
func (r *StopRepository) Create(ctx context.Context, in models.StopInput) (*models.Stop, error) {
	query := `
		INSERT INTO stops (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id, name, latitude, longitude
	`

	var stop models.Stop
	if err := r.db.GetContext(ctx, &stop, query, in.Name, in.Latitude, in.Longitude); err != nil {
		return nil, fmt.Errorf("failed to create stop: %w", err)
	}
	return &stop, nil
}

// Update replaces the name and coordinates of a stop
func (r *StopRepository) Update(ctx context.Context, id uuid.UUID, in models.StopInput) (*models.Stop, error) {
	query := `
		UPDATE stops
		SET name = $2, latitude = $3, longitude = $4
		WHERE id = $1
		RETURNING id, name, latitude, longitude
	`

	var stop models.Stop
	err := r.db.GetContext(ctx, &stop, query, id, in.Name, in.Latitude, in.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update stop: %w", err)
	}
	return &stop, nil
}

// Delete removes a stop; deleting a missing id is not an error
func (r *StopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stops WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete stop: %w", err)
	}
	return nil
}
