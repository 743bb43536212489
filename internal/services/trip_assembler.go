package services

import "github.com/yismin/EV-charging-tunisia/internal/domain"

// AssembleTrip folds the route, the chosen stops, and the planning outcome
// into the final itinerary. Distance and drive time come from the polyline,
// charge time from the stops, and the CO2 figure compares the trip against a
// combustion car using the policy's emission factor.
func AssembleTrip(origin, destination domain.Coordinate, route domain.RoutePolyline, stops []domain.PlannedStop, feasible bool, emissionFactorKgPerKm float64) domain.TripPlan {
	driveMinutes := route.TotalDurationMinutes()
	chargeMinutes := 0.0
	for _, s := range stops {
		chargeMinutes += s.ChargeMinutes
	}

	totalKm := route.TotalDistanceKm()

	return domain.TripPlan{
		Origin:               origin,
		Destination:          destination,
		Stops:                stops,
		TotalDistanceKm:      totalKm,
		DriveMinutes:         driveMinutes,
		ChargeMinutes:        chargeMinutes,
		TotalDurationMinutes: driveMinutes + chargeMinutes,
		CO2SavedKg:           totalKm * emissionFactorKgPerKm,
		Feasible:             feasible,
	}
}
