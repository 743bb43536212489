package services

import (
	"math"
	"slices"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/geo"
)

// SelectCandidates projects chargers onto the route and returns the usable
// ones inside the corridor, ordered by distance along the route. Chargers that
// are out of service, lack a compatible connector, or sit further than
// corridorWidthKm from the polyline are dropped. An empty result is a valid
// outcome, not an error.
func SelectCandidates(route domain.RoutePolyline, chargers []domain.Charger, vehicle domain.VehicleProfile, corridorWidthKm float64) []domain.ChargerCandidate {
	out := []domain.ChargerCandidate{}
	if len(route.Legs) == 0 {
		return out
	}

	// Road distance accumulated at the start of each leg.
	cumulative := make([]float64, len(route.Legs))
	total := 0.0
	for i, leg := range route.Legs {
		cumulative[i] = total
		total += leg.DistanceKm
	}

	for _, ch := range chargers {
		if !ch.Status.Usable() {
			continue
		}
		if !ch.HasConnector(vehicle.Connector) {
			continue
		}

		bestOffset := math.MaxFloat64
		bestAlong := 0.0
		found := false
		for i, leg := range route.Legs {
			if leg.From == leg.To && len(route.Legs) > 1 {
				continue // zero-length legs carry no geometry
			}

			alongKm, offsetKm := geo.ProjectOntoSegment(ch.Location, leg.From, leg.To)
			if offsetKm >= bestOffset {
				continue
			}

			// Map the geometric position on the segment to road distance so
			// candidate positions line up with the provider's leg distances.
			roadAlong := cumulative[i]
			if geomLen := geo.DistanceKm(leg.From, leg.To); geomLen > 0 {
				roadAlong += alongKm / geomLen * leg.DistanceKm
			}

			bestOffset = offsetKm
			bestAlong = roadAlong
			found = true
		}

		if !found || bestOffset > corridorWidthKm {
			continue
		}

		out = append(out, domain.ChargerCandidate{
			Charger:         ch,
			DistanceAlongKm: bestAlong,
			LateralOffsetKm: bestOffset,
		})
	}

	// Tie-breakers keep the ordering deterministic when chargers project to
	// the same point.
	slices.SortFunc(out, func(a, b domain.ChargerCandidate) int {
		if a.DistanceAlongKm != b.DistanceAlongKm {
			if a.DistanceAlongKm < b.DistanceAlongKm {
				return -1
			}
			return 1
		}
		if a.LateralOffsetKm != b.LateralOffsetKm {
			if a.LateralOffsetKm < b.LateralOffsetKm {
				return -1
			}
			return 1
		}
		if a.ID != b.ID {
			if a.ID < b.ID {
				return -1
			}
			return 1
		}
		return 0
	})
	return out
}
