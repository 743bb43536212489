package dto

type VehicleRequest struct {
	ConnectorType string  `json:"connector_type"`
	RangeKm       float64 `json:"range_km"`

	// ChargeRateKmPerMin of zero keeps the server-side default.
	ChargeRateKmPerMin float64 `json:"charge_rate_km_per_min"`
}

type VehicleResponse struct {
	ConnectorType      string  `json:"connector_type"`
	RangeKm            float64 `json:"range_km"`
	ChargeRateKmPerMin float64 `json:"charge_rate_km_per_min"`
}

type StatsResponse struct {
	TotalTrips      int     `json:"total_trips"`
	TotalReviews    int     `json:"total_reviews"`
	TotalFavorites  int     `json:"total_favorites"`
	TotalReports    int     `json:"total_reports"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	CO2SavedKg      float64 `json:"co2_saved_kg"`
}
