package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/models"
)

// ReportQuery selects which reports to list
type ReportQuery struct {
	OnlyUnresolved bool
	Limit          uint64 // 0 means no limit
}

// ReportRepository handles database operations for rider reports
type ReportRepository struct {
	db DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create stores a new unresolved report; created_at is assigned by the database
func (r *ReportRepository) Create(ctx context.Context, scheduleID uuid.UUID, issueType models.IssueType, description string) (*models.Report, error) {
	query := `
		INSERT INTO reports (schedule_id, issue_type, description, is_resolved)
		VALUES ($1, $2, $3, false)
		RETURNING id, schedule_id, issue_type, description, is_resolved, created_at
	`

	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, scheduleID, issueType, description); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// List returns reports newest first, left-joined with their departure, route and company
func (r *ReportRepository) List(ctx context.Context, q ReportQuery) ([]models.ReportRow, error) {
	builder := psql.
		Select(
			"r.id",
			"r.schedule_id",
			"r.issue_type",
			"COALESCE(r.description, '') AS description",
			"r.is_resolved",
			"r.created_at",
			"s.departure_time::text AS departure_time",
			"rt.origin",
			"rt.destination",
			"c.name AS company_name",
		).
		From("reports r").
		// inner joins so orphaned reports never count against the limit
		Join("schedules s ON s.id = r.schedule_id").
		Join("routes rt ON rt.id = s.route_id").
		Join("companies c ON c.id = rt.company_id").
		OrderBy("r.created_at DESC")

	if q.OnlyUnresolved {
		builder = builder.Where(sq.Eq{"r.is_resolved": false})
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	rows := []models.ReportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	return rows, nil
}

// Resolve marks a report resolved; resolving twice succeeds
func (r *ReportRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE reports SET is_resolved = true WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to resolve report: %w", err)
	}
	return nil
}
