package domain

import "time"

// RouteLeg is one uninterrupted drive segment between two polyline vertices.
type RouteLeg struct {
	From            Coordinate `json:"from"`
	To              Coordinate `json:"to"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes float64    `json:"duration_minutes"`
}

// RoutePolyline is the drivable geometry returned by the route provider,
// produced once per plan request and never mutated afterwards.
type RoutePolyline struct {
	Legs []RouteLeg `json:"legs"`
}

func (r RoutePolyline) TotalDistanceKm() float64 {
	total := 0.0
	for _, leg := range r.Legs {
		total += leg.DistanceKm
	}
	return total
}

func (r RoutePolyline) TotalDurationMinutes() float64 {
	total := 0.0
	for _, leg := range r.Legs {
		total += leg.DurationMinutes
	}
	return total
}

// Points returns the polyline vertices in travel order.
func (r RoutePolyline) Points() []Coordinate {
	if len(r.Legs) == 0 {
		return nil
	}
	pts := make([]Coordinate, 0, len(r.Legs)+1)
	pts = append(pts, r.Legs[0].From)
	for _, leg := range r.Legs {
		pts = append(pts, leg.To)
	}
	return pts
}

// ChargerCandidate is a charger projected onto the route corridor. Candidates
// are derived per request and never persisted.
type ChargerCandidate struct {
	Charger

	// DistanceAlongKm is the road distance from the route start to the
	// charger's projection on the polyline.
	DistanceAlongKm float64

	// LateralOffsetKm is the straight-line distance from the charger to that
	// projection.
	LateralOffsetKm float64
}

// Flagged reports whether the underlying charger carries an availability risk.
func (c ChargerCandidate) Flagged() bool {
	return c.Status.Flagged()
}

// PlannedStop records one charging stop chosen by the planner.
type PlannedStop struct {
	Candidate        ChargerCandidate
	ArrivalRangeKm   float64
	ChargeMinutes    float64
	DepartureRangeKm float64
}

// TripPlan is the assembled itinerary for one planning request. When Feasible
// is false the totals still describe the route; Stops holds whatever progress
// the planner made before running out of reachable chargers.
type TripPlan struct {
	Origin               Coordinate
	Destination          Coordinate
	Stops                []PlannedStop
	TotalDistanceKm      float64
	DriveMinutes         float64
	ChargeMinutes        float64
	TotalDurationMinutes float64
	CO2SavedKg           float64
	Feasible             bool
}

// TripWaypoint is the persisted form of a planned stop.
type TripWaypoint struct {
	ChargerID       int64   `json:"charger_id"`
	Name            string  `json:"name"`
	DistanceAlongKm float64 `json:"distance_along_km"`
	ChargeMinutes   float64 `json:"charge_minutes"`
}

// TripRecord is a saved trip in a user's history.
type TripRecord struct {
	ID                   string
	UserID               string
	Start                Coordinate
	End                  Coordinate
	Waypoints            []TripWaypoint
	TotalDistanceKm      float64
	EstimatedDurationMin float64
	Feasible             bool
	CreatedAt            time.Time
}
