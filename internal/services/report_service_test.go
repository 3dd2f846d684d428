package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reportColumns    = []string{"id", "schedule_id", "issue_type", "description", "is_resolved", "created_at"}
	reportRowColumns = append(append([]string{}, reportColumns...), "departure_time", "origin", "destination", "company_name")
)

func setupReportService(t *testing.T) (*ReportService, sqlmock.Sqlmock) {
	db, mock := setupTestDB(t)
	return NewReportService(database.NewReportRepository(db), testLogger()), mock
}

func TestSubmitReport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, mock := setupReportService(t)
		scheduleID := uuid.New()
		reportID := uuid.New()

		mock.ExpectQuery(`INSERT INTO reports`).
			WithArgs(scheduleID, "bus_not_arrived", "Otobüs gelmedi").
			WillReturnRows(sqlmock.NewRows(reportColumns).
				AddRow(reportID.String(), scheduleID.String(), "bus_not_arrived", "Otobüs gelmedi", false, time.Now()))

		report, err := service.Submit(context.Background(), &models.SubmitReportRequest{
			ScheduleID:  scheduleID.String(),
			IssueType:   "bus_not_arrived",
			Description: "Otobüs gelmedi",
		})
		require.NoError(t, err)
		assert.Equal(t, reportID, report.ID)
		assert.False(t, report.IsResolved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Issue Type Is Stored", func(t *testing.T) {
		service, mock := setupReportService(t)
		scheduleID := uuid.New()

		mock.ExpectQuery(`INSERT INTO reports`).
			WithArgs(scheduleID, "driver_rude", "").
			WillReturnRows(sqlmock.NewRows(reportColumns).
				AddRow(uuid.New().String(), scheduleID.String(), "driver_rude", "", false, time.Now()))

		report, err := service.Submit(context.Background(), &models.SubmitReportRequest{
			ScheduleID: scheduleID.String(),
			IssueType:  "driver_rude",
		})
		require.NoError(t, err)
		assert.Equal(t, "driver_rude", report.IssueType.Label())
	})

	t.Run("Missing Fields", func(t *testing.T) {
		service, _ := setupReportService(t)

		_, err := service.Submit(context.Background(), &models.SubmitReportRequest{IssueType: "delay"})
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Schedule ID is required", validationErr.Message)
	})

	t.Run("Invalid Schedule ID", func(t *testing.T) {
		service, _ := setupReportService(t)

		_, err := service.Submit(context.Background(), &models.SubmitReportRequest{ScheduleID: "abc", IssueType: "delay"})
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Backend Failure", func(t *testing.T) {
		service, mock := setupReportService(t)
		mock.ExpectQuery(`INSERT INTO reports`).WillReturnError(fmt.Errorf("insert failed"))

		report, err := service.Submit(context.Background(), &models.SubmitReportRequest{
			ScheduleID: uuid.New().String(),
			IssueType:  "delay",
		})
		assert.Nil(t, report)
		assert.Error(t, err)
	})
}

func TestSubmitThenResolve(t *testing.T) {
	service, mock := setupReportService(t)
	ctx := context.Background()
	scheduleID := uuid.New()
	reportID := uuid.New()
	created := time.Now()

	mock.ExpectQuery(`INSERT INTO reports`).
		WillReturnRows(sqlmock.NewRows(reportColumns).
			AddRow(reportID.String(), scheduleID.String(), "delay", "", false, created))
	mock.ExpectQuery(`WHERE r.is_resolved = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).
			AddRow(reportID.String(), scheduleID.String(), "delay", "", false, created,
				"08:00:00", "Lefkoşa", "Girne", "Kombos"))
	mock.ExpectExec(`UPDATE reports SET is_resolved = true`).
		WithArgs(reportID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE r.is_resolved = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(reportRowColumns))

	_, err := service.Submit(ctx, &models.SubmitReportRequest{ScheduleID: scheduleID.String(), IssueType: "delay"})
	require.NoError(t, err)

	pending, err := service.ListUnresolved(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, reportID, pending[0].ID)
	assert.False(t, pending[0].IsResolved)
	assert.Equal(t, "Gecikme Var", pending[0].IssueLabel)
	assert.Equal(t, "Kombos", pending[0].CompanyName)

	require.NoError(t, service.Resolve(ctx, reportID.String()))

	pending, err = service.ListUnresolved(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnresolved_FiltersIncompleteJoins(t *testing.T) {
	service, mock := setupReportService(t)

	mock.ExpectQuery(`FROM reports r`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).
			AddRow(uuid.New().String(), uuid.New().String(), "crowded", "", false, time.Now(),
				nil, nil, nil, nil).
			AddRow(uuid.New().String(), uuid.New().String(), "delay", "", false, time.Now(),
				"07:15:00", "Lefkoşa", "Girne", nil).
			AddRow(uuid.New().String(), uuid.New().String(), "wrong_time", "", false, time.Now(),
				"12:00:00", "Girne", "Lefkoşa", "Kombos"))

	views, err := service.ListUnresolved(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Saat Yanlış", views[0].IssueLabel)
	assert.Equal(t, "Kombos", views[0].CompanyName)
}

func TestRecentReports(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		service, mock := setupReportService(t)

		mock.ExpectQuery(`LIMIT 5`).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows(reportRowColumns))

		views, err := service.Recent(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Joins Before Limit", func(t *testing.T) {
		service, mock := setupReportService(t)

		rows := sqlmock.NewRows(reportRowColumns)
		for i := 0; i < RecentReportLimit; i++ {
			rows.AddRow(uuid.New().String(), uuid.New().String(), "delay", "", false, time.Now(),
				"08:00:00", "Lefkoşa", "Girne", "Kombos")
		}
		mock.ExpectQuery(`JOIN companies c ON c.id = rt.company_id WHERE r.is_resolved = \$1 ORDER BY r.created_at DESC LIMIT 5`).
			WithArgs(false).
			WillReturnRows(rows)

		views, err := service.Recent(context.Background())
		require.NoError(t, err)
		assert.Len(t, views, RecentReportLimit)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResolveReport_Validation(t *testing.T) {
	service, _ := setupReportService(t)

	err := service.Resolve(context.Background(), "")
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Report ID is required", validationErr.Message)

	err = service.Resolve(context.Background(), "not-a-uuid")
	assert.ErrorAs(t, err, &validationErr)
}
