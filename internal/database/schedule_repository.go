package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/models"
)

// psql builds statements with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ScheduleRepository handles database operations for departures
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByRoute returns every departure of a route
func (r *ScheduleRepository) ListByRoute(ctx context.Context, routeID uuid.UUID) ([]models.Schedule, error) {
	query := `
		SELECT id, route_id, departure_time::text AS departure_time, price
		FROM schedules
		WHERE route_id = $1
	`

	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, routeID); err != nil {
		return nil, fmt.Errorf("error fetching schedules for route %s: %w", routeID, err)
	}
	return schedules, nil
}

// ListWithRoutes returns departures joined with route and company, earliest first
func (r *ScheduleRepository) ListWithRoutes(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleWithRoute, error) {
	builder := psql.
		Select(
			"s.id",
			"s.departure_time::text AS departure_time",
			"s.price",
			"s.route_id",
			"rt.origin",
			"rt.destination",
			"rt.route_name",
			"rt.route_number",
			"COALESCE(c.name, '"+models.UnknownCompanyName+"') AS company_name",
		).
		From("schedules s").
		Join("routes rt ON rt.id = s.route_id").
		LeftJoin("companies c ON c.id = rt.company_id").
		OrderBy("s.departure_time ASC")

	if filter.Origin != "" {
		builder = builder.Where(sq.Eq{"rt.origin": filter.Origin})
	}
	if filter.Destination != "" {
		builder = builder.Where(sq.Eq{"rt.destination": filter.Destination})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule query: %w", err)
	}

	schedules := []models.ScheduleWithRoute{}
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	return schedules, nil
}

// Delete removes a departure; deleting a missing id is not an error
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
