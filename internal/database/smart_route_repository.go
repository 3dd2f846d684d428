package database

import (
	"context"
	"fmt"

	"github.com/kktculasim/ulasim-backend/internal/models"
)

// SmartRouteRepository calls the remote transfer-search procedure
type SmartRouteRepository struct {
	db DB
}

// NewSmartRouteRepository creates a new smart route repository
func NewSmartRouteRepository(db DB) *SmartRouteRepository {
	return &SmartRouteRepository{db: db}
}

// FindSmartRoutes invokes get_smart_routes with named parameters and returns its rows as-is
func (r *SmartRouteRepository) FindSmartRoutes(ctx context.Context, origin, destination, startTime string) ([]models.SmartRoute, error) {
	query := `
		SELECT
			route_type,
			transfer_point,
			COALESCE(wait_time_minutes, 0) AS wait_time_minutes,
			COALESCE(total_price, 0) AS total_price,
			legs
		FROM get_smart_routes(
			origin_city => $1,
			destination_city => $2,
			start_time => $3
		)
	`

	routes := []models.SmartRoute{}
	err := r.db.SelectContext(ctx, &routes, query, origin, destination, startTime)
	if err != nil {
		if isUndefinedFunction(err) {
			return nil, fmt.Errorf("get_smart_routes: %w: %v", ErrProcedureNotFound, err)
		}
		return nil, fmt.Errorf("error calling get_smart_routes: %w", err)
	}
	return routes, nil
}
