package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kktculasim/ulasim-backend/internal/geo"
)

// Stop is a geographic point of interest shown on the map
type Stop struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Latitude  *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64  `json:"longitude,omitempty" db:"longitude"`
}

// HasCoordinates reports whether both coordinates are set
func (s Stop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// StopInput holds the mutable fields of a stop
type StopInput struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

// Validate enforces a non-empty name and paired coordinates
func (in *StopInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrInvalidInput("Stop name is required")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return ErrInvalidInput("Latitude and longitude must be provided together")
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return ErrInvalidInput("Latitude must be between -90 and 90")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return ErrInvalidInput("Longitude must be between -180 and 180")
	}
	return nil
}

// CreateStopRequest is the payload of POST /api/admin/stops/create
type CreateStopRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UpdateStopRequest is the payload of PUT /api/admin/stops/update
type UpdateStopRequest struct {
	StopID    string   `json:"stopId"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// DeleteStopRequest is the payload of DELETE /api/admin/stops/delete
type DeleteStopRequest struct {
	StopID string `json:"stopId"`
}

// NearestStop is the result of a geolocation match
type NearestStop struct {
	Stop       Stop       `json:"stop"`
	DistanceKm float64    `json:"distance_km"`
	Bounds     geo.Bounds `json:"bounds"`
}
