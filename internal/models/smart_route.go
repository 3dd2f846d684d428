package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SmartRouteType tags an itinerary as direct or with a transfer
type SmartRouteType string

const (
	SmartRouteDirect   SmartRouteType = "direct"
	SmartRouteTransfer SmartRouteType = "transfer"
)

// RouteLeg is one schedule within an itinerary
type RouteLeg struct {
	LegNumber     int     `json:"leg_number"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departure_time"`
	Company       string  `json:"company"`
	RouteName     string  `json:"route_name"`
	RouteNumber   *string `json:"route_number,omitempty"`
	Price         float64 `json:"price"`
	ScheduleID    string  `json:"schedule_id"`
}

// RouteLegs is the jsonb legs column returned by get_smart_routes
type RouteLegs []RouteLeg

// Scan implements sql.Scanner for json/jsonb columns
func (l *RouteLegs) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = RouteLegs{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RouteLegs", src)
	}

	legs := RouteLegs{}
	if err := json.Unmarshal(raw, &legs); err != nil {
		return fmt.Errorf("failed to decode legs: %w", err)
	}
	sort.SliceStable(legs, func(i, j int) bool { return legs[i].LegNumber < legs[j].LegNumber })
	*l = legs
	return nil
}

// SmartRoute is a computed direct or transfer itinerary
type SmartRoute struct {
	RouteType       SmartRouteType `json:"route_type" db:"route_type"`
	TransferPoint   *string        `json:"transfer_point,omitempty" db:"transfer_point"`
	WaitTimeMinutes int            `json:"wait_time_minutes" db:"wait_time_minutes"`
	TotalPrice      float64        `json:"total_price" db:"total_price"`
	Legs            RouteLegs      `json:"legs" db:"legs"`
}
