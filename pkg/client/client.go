// Package client is a typed HTTP client for the rider API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kktculasim/ulasim-backend/internal/models"
)

// APIError is a non-2xx response that carried no search outcome
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %d", e.StatusCode)
	}
	return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a running server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL, e.g. http://localhost:8080
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Locations returns every known place name
func (c *Client) Locations(ctx context.Context) (*models.LocationsResult, error) {
	var result models.LocationsResult
	if err := c.get(ctx, "/api/locations", nil, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// Schedules runs a direct search. A failed search is returned as a result with status failed.
func (c *Client) Schedules(ctx context.Context, origin, destination string) (*models.ScheduleSearchResult, error) {
	q := url.Values{"origin": {origin}, "destination": {destination}}
	var result models.ScheduleSearchResult
	if err := c.get(ctx, "/api/schedules", q, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// SmartRoutes runs a transfer-aware search; an empty startTime means now
func (c *Client) SmartRoutes(ctx context.Context, origin, destination, startTime string) (*models.SmartRouteSearchResult, error) {
	q := url.Values{"origin": {origin}, "destination": {destination}}
	if startTime != "" {
		q.Set("start_time", startTime)
	}
	var result models.SmartRouteSearchResult
	if err := c.get(ctx, "/api/smart-routes", q, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// NearestStop finds the closest stop with coordinates
func (c *Client) NearestStop(ctx context.Context, lat, lon float64) (*models.NearestStop, error) {
	q := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
	var result models.NearestStop
	if err := c.get(ctx, "/api/stops/nearest", q, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// IssueTypes returns the report vocabulary
func (c *Client) IssueTypes(ctx context.Context) ([]models.IssueTypeOption, error) {
	var body struct {
		IssueTypes []models.IssueTypeOption `json:"issue_types"`
	}
	if err := c.get(ctx, "/api/issue-types", nil, &body, false); err != nil {
		return nil, err
	}
	return body.IssueTypes, nil
}

// SubmitReport files a rider report against a departure
func (c *Client) SubmitReport(ctx context.Context, req models.SubmitReportRequest) (*models.Report, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reports", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var body struct {
		Success bool           `json:"success"`
		Report  *models.Report `json:"report"`
	}
	if err := c.do(httpReq, &body, false); err != nil {
		return nil, err
	}
	return body.Report, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}, outcomeOn503 bool) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out, outcomeOn503)
}

// do decodes a 2xx body into out. With outcomeOn503 a 503 body is a search outcome, not an error.
func (c *Client) do(req *http.Request, out interface{}, outcomeOn503 bool) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok && !(outcomeOn503 && resp.StatusCode == http.StatusServiceUnavailable) {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
