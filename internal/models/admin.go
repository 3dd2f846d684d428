package models

import (
	"github.com/google/uuid"
)

// AdminLoginRequest is the payload of POST /api/admin/login
type AdminLoginRequest struct {
	SecretKey string `json:"secretKey"`
}

// DeleteScheduleRequest is the payload of DELETE /api/admin/schedules/delete
type DeleteScheduleRequest struct {
	ScheduleID string `json:"scheduleId"`
}

// AdminStats are the dashboard counters
type AdminStats struct {
	TotalSchedules int `json:"total_schedules" db:"total_schedules"`
	PendingReports int `json:"pending_reports" db:"pending_reports"`
	TotalStops     int `json:"total_stops" db:"total_stops"`
	TotalCompanies int `json:"total_companies" db:"total_companies"`
}

// Dashboard is the admin landing view
type Dashboard struct {
	Stats         AdminStats   `json:"stats"`
	RecentReports []ReportView `json:"recent_reports"`
}

// ScheduleWithRoute is a departure joined with its route and company for the admin list
type ScheduleWithRoute struct {
	ID            uuid.UUID `json:"id" db:"id"`
	DepartureTime string    `json:"departure_time" db:"departure_time"`
	Price         *float64  `json:"price" db:"price"`
	RouteID       uuid.UUID `json:"route_id" db:"route_id"`
	Origin        string    `json:"origin" db:"origin"`
	Destination   string    `json:"destination" db:"destination"`
	RouteName     *string   `json:"route_name,omitempty" db:"route_name"`
	RouteNumber   *string   `json:"route_number,omitempty" db:"route_number"`
	CompanyName   string    `json:"company_name" db:"company_name"`
}

// ScheduleFilter narrows the admin schedule list
type ScheduleFilter struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
}
