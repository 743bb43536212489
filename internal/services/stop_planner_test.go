package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

func candAt(id int64, km float64, status domain.ChargerStatus) domain.ChargerCandidate {
	return domain.ChargerCandidate{
		Charger: domain.Charger{
			ID:         id,
			Name:       fmt.Sprintf("station-%d", id),
			Connectors: []domain.ConnectorType{domain.ConnectorType2},
			Status:     status,
		},
		DistanceAlongKm: km,
	}
}

// checkRangeInvariant walks the plan and fails if any leg exceeds the range
// available when it starts, or if any recorded range leaves [0, capacity].
func checkRangeInvariant(t *testing.T, totalKm float64, vehicle domain.VehicleProfile, stops []domain.PlannedStop) {
	t.Helper()
	available := vehicle.RangeKm
	position := 0.0
	for i, s := range stops {
		leg := s.Candidate.DistanceAlongKm - position
		if leg > available+1e-9 {
			t.Fatalf("stop %d: leg of %.3f km exceeds available range %.3f km", i, leg, available)
		}
		if s.ArrivalRangeKm < -1e-9 || s.DepartureRangeKm > vehicle.RangeKm+1e-9 {
			t.Fatalf("stop %d: range out of bounds: arrival=%.3f departure=%.3f", i, s.ArrivalRangeKm, s.DepartureRangeKm)
		}
		available = s.DepartureRangeKm
		position = s.Candidate.DistanceAlongKm
	}
	if lastLeg := totalKm - position; lastLeg > available+1e-9 {
		t.Fatalf("final leg of %.3f km exceeds available range %.3f km", lastLeg, available)
	}
}

func TestPlanStopsPicksFurthestReachable(t *testing.T) {
	route := northRoute(34.0, 9.0, 300)
	candidates := []domain.ChargerCandidate{
		candAt(1, 90, domain.StatusWorking),
		candAt(2, 95, domain.StatusWorking),
		candAt(3, 180, domain.StatusWorking),
		candAt(4, 270, domain.StatusWorking),
	}
	vehicle := testProfile(175, 2)

	stops, feasible, err := PlanStops(route, candidates, vehicle, ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if !feasible {
		t.Fatal("expected a feasible plan")
	}
	if len(stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(stops))
	}
	if stops[0].Candidate.ID != 2 || stops[1].Candidate.ID != 4 {
		t.Fatalf("got stops at %v and %v km, want 95 then 270",
			stops[0].Candidate.DistanceAlongKm, stops[1].Candidate.DistanceAlongKm)
	}
	checkRangeInvariant(t, 300, vehicle, stops)

	// Arrival and charge bookkeeping at the first stop: 175 - 95 driven = 80
	// left, 95 km to restore at 2 km/min.
	if stops[0].ArrivalRangeKm != 80 {
		t.Errorf("arrival range = %v, want 80", stops[0].ArrivalRangeKm)
	}
	if stops[0].ChargeMinutes != 47.5 {
		t.Errorf("charge minutes = %v, want 47.5", stops[0].ChargeMinutes)
	}
	if stops[0].DepartureRangeKm != 175 {
		t.Errorf("departure range = %v, want full 175", stops[0].DepartureRangeKm)
	}
}

func TestPlanStopsShorterRangeNeedsMoreStops(t *testing.T) {
	route := northRoute(34.0, 9.0, 300)
	candidates := []domain.ChargerCandidate{
		candAt(1, 90, domain.StatusWorking),
		candAt(2, 95, domain.StatusWorking),
		candAt(3, 180, domain.StatusWorking),
		candAt(4, 270, domain.StatusWorking),
	}
	vehicle := testProfile(100, 2)

	stops, feasible, err := PlanStops(route, candidates, vehicle, ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if !feasible {
		t.Fatal("expected a feasible plan")
	}

	wantKm := []float64{95, 180, 270}
	if len(stops) != len(wantKm) {
		t.Fatalf("got %d stops, want %d", len(stops), len(wantKm))
	}
	for i, s := range stops {
		if s.Candidate.DistanceAlongKm != wantKm[i] {
			t.Errorf("stop %d at %v km, want %v", i, s.Candidate.DistanceAlongKm, wantKm[i])
		}
	}
	checkRangeInvariant(t, 300, vehicle, stops)
}

func TestPlanStopsInfeasible(t *testing.T) {
	route := northRoute(34.0, 9.0, 300)
	candidates := []domain.ChargerCandidate{
		candAt(1, 50, domain.StatusWorking),
		candAt(2, 55, domain.StatusWorking),
	}

	stops, feasible, err := PlanStops(route, candidates, testProfile(100, 2), ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if feasible {
		t.Fatal("gap from 55 to 300 km exceeds a 100 km range; plan must be infeasible")
	}
	// The walk still makes what progress it can before giving up.
	if len(stops) != 1 || stops[0].Candidate.ID != 2 {
		t.Fatalf("expected the single reachable stop at 55 km, got %v", stops)
	}
}

func TestPlanStopsNoCandidatesShortRoute(t *testing.T) {
	route := northRoute(34.0, 9.0, 80)

	stops, feasible, err := PlanStops(route, nil, testProfile(100, 2), ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if !feasible || len(stops) != 0 {
		t.Fatalf("80 km on a 100 km range needs no stops, got feasible=%v stops=%d", feasible, len(stops))
	}
}

func TestPlanStopsPrefersUnflaggedAtSameDistance(t *testing.T) {
	route := northRoute(34.0, 9.0, 180)
	occupied := candAt(1, 95, domain.StatusOccupied)
	working := candAt(2, 95, domain.StatusWorking)

	stops, feasible, err := PlanStops(route, []domain.ChargerCandidate{occupied, working}, testProfile(100, 2), ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if !feasible || len(stops) != 1 {
		t.Fatalf("got feasible=%v stops=%d, want one stop", feasible, len(stops))
	}
	if stops[0].Candidate.ID != 2 {
		t.Fatalf("picked charger %d, want the working one at the same distance", stops[0].Candidate.ID)
	}
}

func TestPlanStopsUsesFlaggedWhenFurthest(t *testing.T) {
	route := northRoute(34.0, 9.0, 180)
	working := candAt(1, 90, domain.StatusWorking)
	occupied := candAt(2, 95, domain.StatusOccupied)

	stops, _, err := PlanStops(route, []domain.ChargerCandidate{working, occupied}, testProfile(100, 2), ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if len(stops) != 1 || stops[0].Candidate.ID != 2 {
		t.Fatalf("furthest reachable wins even when flagged, got %v", stops)
	}
}

func TestPlanStopsSameDistanceSmallerOffsetWins(t *testing.T) {
	route := northRoute(34.0, 9.0, 180)
	far := candAt(1, 95, domain.StatusWorking)
	far.LateralOffsetKm = 8
	near := candAt(2, 95, domain.StatusWorking)
	near.LateralOffsetKm = 1

	stops, _, err := PlanStops(route, []domain.ChargerCandidate{far, near}, testProfile(100, 2), ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if len(stops) != 1 || stops[0].Candidate.ID != 2 {
		t.Fatalf("smaller lateral offset should win the tie, got %v", stops)
	}
}

func TestPlanStopsTerminatesOnDegenerateCandidates(t *testing.T) {
	route := northRoute(34.0, 9.0, 200)

	// Duplicates, a candidate at the origin, and one behind the start must
	// not trap the walk.
	candidates := []domain.ChargerCandidate{
		candAt(1, 0, domain.StatusWorking),
		candAt(2, 60, domain.StatusWorking),
		candAt(3, 60, domain.StatusWorking),
		candAt(4, 60, domain.StatusWorking),
	}

	stops, feasible, err := PlanStops(route, candidates, testProfile(100, 2), ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	if feasible {
		t.Fatal("gap from 60 to 200 km exceeds range; plan must be infeasible")
	}
	if len(stops) != 1 {
		t.Fatalf("got %d stops, want exactly one before giving up", len(stops))
	}
	if len(stops) > len(candidates) {
		t.Fatalf("stop count %d exceeds candidate count %d", len(stops), len(candidates))
	}
}

func TestPlanStopsNextLegPolicy(t *testing.T) {
	route := northRoute(34.0, 9.0, 300)
	candidates := []domain.ChargerCandidate{
		candAt(1, 90, domain.StatusWorking),
		candAt(2, 95, domain.StatusWorking),
		candAt(3, 180, domain.StatusWorking),
		candAt(4, 270, domain.StatusWorking),
	}
	vehicle := testProfile(175, 2)

	full, _, err := PlanStops(route, candidates, vehicle, ChargeToFull)
	if err != nil {
		t.Fatal(err)
	}
	lean, feasible, err := PlanStops(route, candidates, vehicle, ChargeToNextLeg)
	if err != nil {
		t.Fatal(err)
	}
	if !feasible {
		t.Fatal("expected a feasible plan")
	}

	// Same stop sequence, only the charge amounts differ.
	if len(lean) != len(full) {
		t.Fatalf("policies disagree on stop count: %d vs %d", len(lean), len(full))
	}
	for i := range lean {
		if lean[i].Candidate.ID != full[i].Candidate.ID {
			t.Fatalf("stop %d differs between policies: %d vs %d", i, lean[i].Candidate.ID, full[i].Candidate.ID)
		}
	}

	// At 95 km: next hop is 175 km, arriving with 80 left, so add 95 km.
	// At 270 km: only 30 km remain, so a 15 minute top-up.
	if lean[0].ChargeMinutes != 47.5 {
		t.Errorf("first charge = %v minutes, want 47.5", lean[0].ChargeMinutes)
	}
	if lean[1].ChargeMinutes != 15 {
		t.Errorf("second charge = %v minutes, want 15", lean[1].ChargeMinutes)
	}
	if lean[1].DepartureRangeKm != 30 {
		t.Errorf("second departure range = %v, want exactly the 30 km needed", lean[1].DepartureRangeKm)
	}
	checkRangeInvariant(t, 300, vehicle, lean)
}

func TestPlanStopsRejectsInvalidVehicle(t *testing.T) {
	route := northRoute(34.0, 9.0, 100)
	_, _, err := PlanStops(route, nil, domain.VehicleProfile{Connector: domain.ConnectorType2}, ChargeToFull)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
