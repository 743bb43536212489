package services

import (
	"testing"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

func TestAssembleTripTotals(t *testing.T) {
	route := northRoute(34.0, 9.0, 150, 150)
	origin := route.Legs[0].From
	destination := route.Legs[len(route.Legs)-1].To

	stops := []domain.PlannedStop{
		{Candidate: candAt(1, 95, domain.StatusWorking), ArrivalRangeKm: 80, ChargeMinutes: 47.5, DepartureRangeKm: 175},
		{Candidate: candAt(2, 270, domain.StatusWorking), ArrivalRangeKm: 0, ChargeMinutes: 87.5, DepartureRangeKm: 175},
	}

	plan := AssembleTrip(origin, destination, route, stops, true, 0.12)

	if plan.TotalDistanceKm != 300 {
		t.Errorf("total distance = %v, want 300", plan.TotalDistanceKm)
	}
	if plan.DriveMinutes != 225 {
		t.Errorf("drive minutes = %v, want 225", plan.DriveMinutes)
	}
	if plan.ChargeMinutes != 135 {
		t.Errorf("charge minutes = %v, want 135", plan.ChargeMinutes)
	}
	if plan.TotalDurationMinutes != 360 {
		t.Errorf("total duration = %v, want 360", plan.TotalDurationMinutes)
	}
	if plan.CO2SavedKg != 36 {
		t.Errorf("co2 saved = %v, want 36", plan.CO2SavedKg)
	}
	if !plan.Feasible {
		t.Error("feasible flag lost in assembly")
	}
	if len(plan.Stops) != 2 {
		t.Errorf("stops = %d, want 2", len(plan.Stops))
	}
}

func TestAssembleTripInfeasibleKeepsRouteTotals(t *testing.T) {
	route := northRoute(34.0, 9.0, 300)

	plan := AssembleTrip(route.Legs[0].From, route.Legs[0].To, route, nil, false, 0.12)

	if plan.Feasible {
		t.Error("expected infeasible plan")
	}
	if plan.TotalDistanceKm != 300 || plan.DriveMinutes != 225 {
		t.Errorf("route totals must survive infeasibility, got %v km / %v min",
			plan.TotalDistanceKm, plan.DriveMinutes)
	}
	if plan.ChargeMinutes != 0 {
		t.Errorf("charge minutes = %v, want 0 with no stops", plan.ChargeMinutes)
	}
}
