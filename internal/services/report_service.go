package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// RecentReportLimit is the number of reports shown on the dashboard
const RecentReportLimit = 5

// ReportService records rider reports and correlates them back to departures
type ReportService struct {
	repo   *database.ReportRepository
	logger *logrus.Logger
}

// NewReportService creates a new report service
func NewReportService(repo *database.ReportRepository, logger *logrus.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: logger,
	}
}

// Submit stores a report against a departure. Unknown issue tags are stored as given.
func (s *ReportService) Submit(ctx context.Context, req *models.SubmitReportRequest) (*models.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, models.ErrInvalidInput("Invalid schedule ID")
	}

	issueType := models.IssueType(req.IssueType)
	if !issueType.Known() {
		s.logger.WithField("issue_type", req.IssueType).Warn("Storing report with unrecognized issue type")
	}

	report, err := s.repo.Create(ctx, scheduleID, issueType, req.Description)
	if err != nil {
		s.logger.WithError(err).WithField("schedule_id", scheduleID).Error("Failed to store report")
		return nil, fmt.Errorf("failed to submit report: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"schedule_id": scheduleID,
		"issue_type":  issueType,
	}).Info("Report submitted")

	return report, nil
}

// ListUnresolved returns displayable unresolved reports, newest first
func (s *ReportService) ListUnresolved(ctx context.Context) ([]models.ReportView, error) {
	return s.list(ctx, database.ReportQuery{OnlyUnresolved: true})
}

// Recent returns the newest unresolved reports for the dashboard
func (s *ReportService) Recent(ctx context.Context) ([]models.ReportView, error) {
	return s.list(ctx, database.ReportQuery{OnlyUnresolved: true, Limit: RecentReportLimit})
}

func (s *ReportService) list(ctx context.Context, q database.ReportQuery) ([]models.ReportView, error) {
	rows, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list reports")
		return nil, err
	}

	views := make([]models.ReportView, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if !row.Complete() {
			dropped++
			continue
		}
		views = append(views, row.View())
	}

	if dropped > 0 {
		s.logger.WithField("dropped", dropped).Debug("Skipped reports whose departure or route no longer exists")
	}
	return views, nil
}

// Resolve marks a report resolved
func (s *ReportService) Resolve(ctx context.Context, reportID string) error {
	id, err := parseID(reportID, "Report ID")
	if err != nil {
		return err
	}

	if err := s.repo.Resolve(ctx, id); err != nil {
		s.logger.WithError(err).WithField("report_id", id).Error("Failed to resolve report")
		return err
	}

	s.logger.WithField("report_id", id).Info("Report resolved")
	return nil
}
