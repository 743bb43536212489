package dto

import "time"

type PlanTripRequest struct {
	StartLat float64 `json:"start_lat"`
	StartLon float64 `json:"start_lon"`
	EndLat   float64 `json:"end_lat"`
	EndLon   float64 `json:"end_lon"`

	// CorridorWidthKm widens or narrows the charger search corridor for
	// this request only. Zero keeps the policy default.
	CorridorWidthKm float64 `json:"corridor_width_km"`
}

type TripStopResponse struct {
	ChargerID        int64   `json:"charger_id"`
	Name             string  `json:"name"`
	City             string  `json:"city"`
	DistanceAlongKm  float64 `json:"distance_along_km"`
	ArrivalRangeKm   float64 `json:"arrival_range_km"`
	ChargeMinutes    float64 `json:"charge_minutes"`
	DepartureRangeKm float64 `json:"departure_range_km"`
}

type TripPlanResponse struct {
	TripID               string             `json:"trip_id"`
	StartLat             float64            `json:"start_lat"`
	StartLon             float64            `json:"start_lon"`
	EndLat               float64            `json:"end_lat"`
	EndLon               float64            `json:"end_lon"`
	Stops                []TripStopResponse `json:"stops"`
	TotalDistanceKm      float64            `json:"total_distance_km"`
	DriveMinutes         float64            `json:"drive_minutes"`
	ChargeMinutes        float64            `json:"charge_minutes"`
	TotalDurationMinutes float64            `json:"total_duration_minutes"`
	CO2SavedKg           float64            `json:"co2_saved_kg"`
	Feasible             bool               `json:"feasible"`
}

type TripWaypointResponse struct {
	ChargerID       int64   `json:"charger_id"`
	Name            string  `json:"name"`
	DistanceAlongKm float64 `json:"distance_along_km"`
	ChargeMinutes   float64 `json:"charge_minutes"`
}

type TripRecordResponse struct {
	ID                   string                 `json:"id"`
	StartLat             float64                `json:"start_lat"`
	StartLon             float64                `json:"start_lon"`
	EndLat               float64                `json:"end_lat"`
	EndLon               float64                `json:"end_lon"`
	Waypoints            []TripWaypointResponse `json:"waypoints"`
	TotalDistanceKm      float64                `json:"total_distance_km"`
	EstimatedDurationMin float64                `json:"estimated_duration_minutes"`
	Feasible             bool                   `json:"feasible"`
	CreatedAt            time.Time              `json:"created_at"`
}

type TripHistoryResponse struct {
	Results []TripRecordResponse `json:"results"`
}
