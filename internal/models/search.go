package models

import (
	"strings"
)

// ResultStatus separates "searched and found nothing" from "the search failed"
type ResultStatus string

const (
	ResultFound  ResultStatus = "found"
	ResultEmpty  ResultStatus = "empty"
	ResultFailed ResultStatus = "failed"
)

// StatusFor returns found or empty depending on n
func StatusFor(n int) ResultStatus {
	if n == 0 {
		return ResultEmpty
	}
	return ResultFound
}

// SearchRequest represents a rider's origin/destination query
type SearchRequest struct {
	Origin      string `form:"origin" json:"origin"`
	Destination string `form:"destination" json:"destination"`
	StartTime   string `form:"start_time" json:"start_time,omitempty"` // smart routes only, HH:MM[:SS]
}

// Validate checks required fields
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return ErrInvalidInput("origin is required")
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ErrInvalidInput("destination is required")
	}
	return nil
}

// LocationsResult is the outcome of a Location Directory lookup
type LocationsResult struct {
	Status    ResultStatus `json:"status"`
	Locations []string     `json:"locations"`
}

// ScheduleSearchResult is the outcome of a direct schedule search
type ScheduleSearchResult struct {
	Status  ResultStatus     `json:"status"`
	Message string           `json:"message"`
	Results []ScheduleResult `json:"results"`
}

// SmartRouteSearchResult is the outcome of a smart route search
type SmartRouteSearchResult struct {
	Status    ResultStatus `json:"status"`
	Message   string       `json:"message"`
	StartTime string       `json:"start_time"`
	Routes    []SmartRoute `json:"routes"`
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &ValidationError{Message: message}
}

// ValidationError represents a validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
