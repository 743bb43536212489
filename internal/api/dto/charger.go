package dto

import "time"

type ChargerResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	UsageType      string   `json:"usage_type"`
	ConnectorTypes []string `json:"connector_types"`
	Status         string   `json:"status"`
	AvgRating      *float64 `json:"avg_rating"`
	ReviewCount    int      `json:"review_count"`
	ReportCount    int      `json:"report_count"`
}

type PaginatedChargersResponse struct {
	Total   int               `json:"total"`
	Skip    int               `json:"skip"`
	Limit   int               `json:"limit"`
	Results []ChargerResponse `json:"results"`
}

// NearbyChargerResponse carries the straight-line distance from the query
// point; distance_type makes explicit that this is not road distance.
type NearbyChargerResponse struct {
	ChargerResponse
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	DistanceType    string  `json:"distance_type"`
}

type NearbyChargersResponse struct {
	Results []NearbyChargerResponse `json:"results"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	ChargerID int64     `json:"charger_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewsResponse struct {
	Results []ReviewResponse `json:"results"`
}

type ReportRequest struct {
	IssueType   string `json:"issue_type"`
	Description string `json:"description"`
}

type ReportResponse struct {
	ID            string    `json:"id"`
	ChargerID     int64     `json:"charger_id"`
	IssueType     string    `json:"issue_type"`
	Description   string    `json:"description"`
	ChargerStatus string    `json:"charger_status"`
	CreatedAt     time.Time `json:"created_at"`
}
