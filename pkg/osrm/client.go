// Package osrm is a minimal client for the OSRM route service.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public OSRM demo server
const DefaultBaseURL = "https://router.project-osrm.org"

// ErrNoRoute is returned when the service answers but finds no route
var ErrNoRoute = errors.New("osrm: no route found")

// Coordinate is a WGS84 position in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Route is a routed line between two coordinates
type Route struct {
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
	Path            []Coordinate `json:"path"`
}

// Client calls an OSRM-compatible HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
}

// New creates a client. An empty baseURL uses the public demo server and an empty profile uses driving.
func New(baseURL, profile string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if profile == "" {
		profile = "driving"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		profile:    profile,
	}
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Type        string       `json:"type"`
			Coordinates [][2]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Route returns the full-overview route from one coordinate to another.
func (c *Client) Route(ctx context.Context, from, to Coordinate) (*Route, error) {
	u := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, c.profile, from.Lon, from.Lat, to.Lon, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm request: %w", err)
	}
	defer resp.Body.Close()

	var body routeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("osrm status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("osrm decode: %w", err)
	}

	// OSRM reports NoRoute with a 400 status and a JSON body
	if body.Code == "NoRoute" || (body.Code == "Ok" && len(body.Routes) == 0) {
		return nil, ErrNoRoute
	}
	if resp.StatusCode != http.StatusOK || body.Code != "Ok" {
		return nil, fmt.Errorf("osrm status %d: %s %s", resp.StatusCode, body.Code, body.Message)
	}

	first := body.Routes[0]
	route := &Route{
		DistanceMeters:  first.Distance,
		DurationSeconds: first.Duration,
		Path:            make([]Coordinate, 0, len(first.Geometry.Coordinates)),
	}
	for _, c := range first.Geometry.Coordinates {
		route.Path = append(route.Path, Coordinate{Lat: c[1], Lon: c[0]})
	}
	return route, nil
}
