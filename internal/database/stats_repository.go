package database

import (
	"context"
	"fmt"

	"github.com/kktculasim/ulasim-backend/internal/models"
)

// StatsRepository computes dashboard counters
type StatsRepository struct {
	db DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats counts schedules, unresolved reports, stops and companies in one round trip
func (r *StatsRepository) GetStats(ctx context.Context) (*models.AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM schedules) AS total_schedules,
			(SELECT COUNT(*) FROM reports WHERE is_resolved = false) AS pending_reports,
			(SELECT COUNT(*) FROM stops) AS total_stops,
			(SELECT COUNT(*) FROM companies) AS total_companies
	`

	var stats models.AdminStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("error loading dashboard stats: %w", err)
	}
	return &stats, nil
}

