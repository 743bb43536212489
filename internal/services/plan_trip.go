package services

import (
	"context"
	"fmt"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/geo"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// PlanTripRequest bundles the inputs for one planning run.
type PlanTripRequest struct {
	Origin      domain.Coordinate
	Destination domain.Coordinate
	Vehicle     domain.VehicleProfile

	// CorridorWidthKm overrides the policy default when positive.
	CorridorWidthKm float64
}

// PlanTrip runs the full pipeline: fetch the route, gather corridor
// candidates, plan charging stops, and assemble the itinerary. Identical
// inputs produce identical plans; each call is stateless and concurrent calls
// share nothing.
func PlanTrip(ctx context.Context, req PlanTripRequest, routes ports.RouteProvider, directory ports.ChargerDirectory, policy PlanPolicy) (*domain.TripPlan, error) {
	if err := req.Origin.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: origin: %w", err)
	}
	if err := req.Destination.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: destination: %w", err)
	}
	if err := req.Vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	width := req.CorridorWidthKm
	if width <= 0 {
		width = policy.CorridorWidthKm
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: corridor width must be positive, got %v", domain.ErrInvalidInput, width)
	}

	route, err := routes.GetRoute(ctx, req.Origin, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("plan trip: get route: %w", err)
	}

	box := geo.BoundingBoxAround(route.Points(), width)
	chargers, err := directory.ChargersInRegion(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("plan trip: chargers in region: %w", err)
	}

	candidates := SelectCandidates(route, chargers, req.Vehicle, width)

	stops, feasible, err := PlanStops(route, candidates, req.Vehicle, policy.Charge)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	plan := AssembleTrip(req.Origin, req.Destination, route, stops, feasible, policy.EmissionFactorKgPerKm)
	return &plan, nil
}
