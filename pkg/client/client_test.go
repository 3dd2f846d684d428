package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_Schedules(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/schedules", r.URL.Path)
			assert.Equal(t, "Lefkoşa", r.URL.Query().Get("origin"))
			assert.Equal(t, "Girne", r.URL.Query().Get("destination"))
			writeJSON(w, http.StatusOK, models.ScheduleSearchResult{
				Status:  models.ResultFound,
				Results: []models.ScheduleResult{{DepartureTime: "07:30:00", CompanyName: "Kombos"}},
			})
		}))
		defer server.Close()

		result, err := New(server.URL, time.Second).Schedules(context.Background(), "Lefkoşa", "Girne")
		require.NoError(t, err)
		assert.Equal(t, models.ResultFound, result.Status)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "07:30:00", result.Results[0].DepartureTime)
	})

	t.Run("Failed Outcome Is Not An Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, models.ScheduleSearchResult{
				Status:  models.ResultFailed,
				Results: []models.ScheduleResult{},
			})
		}))
		defer server.Close()

		result, err := New(server.URL, time.Second).Schedules(context.Background(), "A", "B")
		require.NoError(t, err)
		assert.Equal(t, models.ResultFailed, result.Status)
		assert.Empty(t, result.Results)
	})

	t.Run("Bad Request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "origin is required"})
		}))
		defer server.Close()

		_, err := New(server.URL, time.Second).Schedules(context.Background(), "", "B")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "origin is required", apiErr.Message)
	})
}

func TestClient_NearestStopNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "35.01", r.URL.Query().Get("lat"))
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No stops with coordinates"})
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).NearestStop(context.Background(), 35.01, 33.01)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_SubmitReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req models.SubmitReportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "delay", req.IssueType)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"report":  models.Report{IssueType: models.IssueDelay},
		})
	}))
	defer server.Close()

	report, err := New(server.URL, time.Second).SubmitReport(context.Background(), models.SubmitReportRequest{
		ScheduleID: "3f1c1f0e-1111-4c2b-9c1a-000000000001",
		IssueType:  "delay",
	})
	require.NoError(t, err)
	assert.Equal(t, models.IssueDelay, report.IssueType)
}

func TestSearchSession_LatestWins(t *testing.T) {
	slowArrived := make(chan struct{})
	var once sync.Once

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.URL.Query().Get("origin")
		if origin == "slow" {
			once.Do(func() { close(slowArrived) })
			select {
			case <-r.Context().Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
		if r.URL.Path == "/api/smart-routes" {
			writeJSON(w, http.StatusOK, models.SmartRouteSearchResult{Status: models.ResultEmpty, Routes: []models.SmartRoute{}})
			return
		}
		writeJSON(w, http.StatusOK, models.ScheduleSearchResult{
			Status:  models.ResultFound,
			Message: origin,
			Results: []models.ScheduleResult{{DepartureTime: "08:00:00"}},
		})
	}))
	defer server.Close()

	session := NewSearchSession(New(server.URL, 10*time.Second))

	slowErr := make(chan error, 1)
	go func() {
		_, err := session.Search(context.Background(), "slow", "B", "")
		slowErr <- err
	}()

	select {
	case <-slowArrived:
	case <-time.After(5 * time.Second):
		t.Fatal("slow search never reached the server")
	}

	outcome, err := session.Search(context.Background(), "fast", "B", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), outcome.Seq)
	assert.Equal(t, "fast", outcome.Schedules.Message)
	assert.Equal(t, models.ResultEmpty, outcome.SmartRoutes.Status)

	select {
	case err := <-slowErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("slow search was not cancelled")
	}
	assert.Equal(t, uint64(2), session.Latest())
}
