package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/models"
)

// RouteEndpoint is the origin/destination pair of one route row
type RouteEndpoint struct {
	Origin      *string `db:"origin"`
	Destination *string `db:"destination"`
}

// RouteRepository handles database operations for routes
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// ListEndpoints returns the origin and destination of every route
func (r *RouteRepository) ListEndpoints(ctx context.Context) ([]RouteEndpoint, error) {
	var endpoints []RouteEndpoint
	err := r.db.SelectContext(ctx, &endpoints, `SELECT origin, destination FROM routes`)
	if err != nil {
		return nil, fmt.Errorf("error listing route endpoints: %w", err)
	}
	return endpoints, nil
}

// FindByEndpoints returns routes whose origin and destination match exactly, with company names
func (r *RouteRepository) FindByEndpoints(ctx context.Context, origin, destination string) ([]models.Route, error) {
	query := `
		SELECT
			r.id,
			r.origin,
			r.destination,
			r.route_name,
			r.route_number,
			r.company_id,
			c.name AS company_name
		FROM routes r
		LEFT JOIN companies c ON c.id = r.company_id
		WHERE r.origin = $1
		  AND r.destination = $2
	`

	var routes []models.Route
	if err := r.db.SelectContext(ctx, &routes, query, origin, destination); err != nil {
		return nil, fmt.Errorf("error finding routes: %w", err)
	}
	return routes, nil
}

// Create inserts a route; names must already be normalized
func (r *RouteRepository) Create(ctx context.Context, route *models.Route) (*models.Route, error) {
	query := `
		INSERT INTO routes (origin, destination, route_name, route_number, company_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, origin, destination, route_name, route_number, company_id
	`

	var created models.Route
	err := r.db.GetContext(ctx, &created, query,
		route.Origin,
		route.Destination,
		route.RouteName,
		route.RouteNumber,
		route.CompanyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return &created, nil
}

// CompanyExists reports whether a company row exists
func (r *RouteRepository) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowxContext(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking company: %w", err)
	}
	return exists, nil
}
