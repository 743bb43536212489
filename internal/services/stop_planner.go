package services

import (
	"fmt"
	"slices"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// PlanStops walks the route greedily, always driving to the furthest charger
// still inside the current range before charging. With full recharges this
// minimizes the number of stops; it makes no attempt to minimize total time.
//
// The trip starts on a full battery at route position zero. Each iteration
// either finishes the route or commits to one candidate strictly ahead of the
// current position, so the loop runs at most len(candidates)+1 times. When no
// candidate is reachable the result is reported infeasible rather than as an
// error: bad coverage is an answer, not a failure.
func PlanStops(route domain.RoutePolyline, candidates []domain.ChargerCandidate, vehicle domain.VehicleProfile, charge ChargePolicy) ([]domain.PlannedStop, bool, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, false, fmt.Errorf("plan stops: %w", err)
	}

	state := NewRangeState(vehicle)
	total := route.TotalDistanceKm()
	position := 0.0
	remaining := slices.Clone(candidates)
	stops := []domain.PlannedStop{}

	for {
		reach := position + state.Remaining()
		if reach >= total {
			if charge == ChargeToNextLeg {
				applyNextLegCharging(stops, total, vehicle)
			}
			return stops, true, nil
		}

		best := -1
		for i, c := range remaining {
			if c.DistanceAlongKm <= position || c.DistanceAlongKm > reach {
				continue
			}
			if best == -1 || furtherOrSafer(c, remaining[best]) {
				best = i
			}
		}
		if best == -1 {
			return stops, false, nil
		}

		chosen := remaining[best]
		if err := state.Consume(chosen.DistanceAlongKm - position); err != nil {
			// Reachability was checked above; an overdraft here is a planner bug.
			return nil, false, fmt.Errorf("plan stops: drive to charger %d: %w", chosen.ID, err)
		}

		arrival := state.Remaining()
		minutes := state.ChargeToFull()

		stops = append(stops, domain.PlannedStop{
			Candidate:        chosen,
			ArrivalRangeKm:   arrival,
			ChargeMinutes:    minutes,
			DepartureRangeKm: state.Remaining(),
		})

		position = chosen.DistanceAlongKm

		// Candidates at or behind the new position can no longer help.
		kept := remaining[:0]
		for _, c := range remaining {
			if c.DistanceAlongKm > position {
				kept = append(kept, c)
			}
		}
		remaining = kept
	}
}

// furtherOrSafer reports whether a beats the current best b: further along
// wins outright, then at equal distance an unflagged charger beats a flagged
// one, then the smaller lateral detour wins.
func furtherOrSafer(a, b domain.ChargerCandidate) bool {
	if a.DistanceAlongKm != b.DistanceAlongKm {
		return a.DistanceAlongKm > b.DistanceAlongKm
	}
	if a.Flagged() != b.Flagged() {
		return !a.Flagged()
	}
	return a.LateralOffsetKm < b.LateralOffsetKm
}

// applyNextLegCharging recomputes the charge at each stop so it covers exactly
// the drive to the next stop or the destination. The stop sequence itself is
// unchanged; arrival margins cascade down to zero.
func applyNextLegCharging(stops []domain.PlannedStop, totalKm float64, vehicle domain.VehicleProfile) {
	available := vehicle.RangeKm
	position := 0.0

	for i := range stops {
		arrival := available - (stops[i].Candidate.DistanceAlongKm - position)

		next := totalKm
		if i+1 < len(stops) {
			next = stops[i+1].Candidate.DistanceAlongKm
		}
		target := next - stops[i].Candidate.DistanceAlongKm
		if target > vehicle.RangeKm {
			target = vehicle.RangeKm
		}

		gain := target - arrival
		if gain < 0 {
			gain = 0
		}

		stops[i].ArrivalRangeKm = arrival
		stops[i].ChargeMinutes = gain / vehicle.ChargeRateKmPerMin
		stops[i].DepartureRangeKm = arrival + gain

		available = arrival + gain
		position = stops[i].Candidate.DistanceAlongKm
	}
}
