package models

import (
	"strings"

	"github.com/google/uuid"
)

// UnknownCompanyName is shown when a route has no company row
const UnknownCompanyName = "Bilinmiyor"

// Company represents a bus operator
type Company struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Route is an origin/destination pair offered by a company
type Route struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Origin      string     `json:"origin" db:"origin"`
	Destination string     `json:"destination" db:"destination"`
	RouteName   *string    `json:"route_name,omitempty" db:"route_name"`
	RouteNumber *string    `json:"route_number,omitempty" db:"route_number"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty" db:"company_id"`
	CompanyName *string    `json:"company_name,omitempty" db:"company_name"`
}

// CompanyOrUnknown returns the joined company name or the placeholder
func (r Route) CompanyOrUnknown() string {
	if r.CompanyName == nil || strings.TrimSpace(*r.CompanyName) == "" {
		return UnknownCompanyName
	}
	return *r.CompanyName
}

// Schedule is one departure of a route
type Schedule struct {
	ID            uuid.UUID `json:"id" db:"id"`
	RouteID       uuid.UUID `json:"route_id" db:"route_id"`
	DepartureTime string    `json:"departure_time" db:"departure_time"`
	Price         *float64  `json:"price,omitempty" db:"price"`
}

// ScheduleResult is one flattened (route, schedule) row of a direct search
type ScheduleResult struct {
	ScheduleID    uuid.UUID  `json:"schedule_id"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureTime string     `json:"departure_time"`
	CompanyName   string     `json:"company_name"`
	Price         *float64   `json:"price"`
	Countdown     *Countdown `json:"countdown,omitempty"`
}

// CreateRouteRequest is the admin payload for adding a route
type CreateRouteRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	RouteName   *string `json:"routeName"`
	RouteNumber *string `json:"routeNumber"`
	CompanyID   string  `json:"companyId"`
}

// NormalizePlaceName trims and collapses internal whitespace
func NormalizePlaceName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
