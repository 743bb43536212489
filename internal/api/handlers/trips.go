package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yismin/EV-charging-tunisia/internal/api/dto"
	"github.com/yismin/EV-charging-tunisia/internal/auth"
	"github.com/yismin/EV-charging-tunisia/internal/config"
	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/metrics"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
	"github.com/yismin/EV-charging-tunisia/internal/services"
)

// TripHandler exposes trip planning and the caller's trip history.
type TripHandler struct {
	Trips     ports.TripRepository
	Users     ports.UserRepository
	Routes    ports.RouteProvider
	Directory ports.ChargerDirectory
	Policy    config.PlannerPolicy
}

// Plan computes a charging itinerary for the caller's saved vehicle and
// records it in the trip history. An infeasible route is still a valid
// plan; only upstream or input failures produce an error status.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.PlanTripRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	vehicle, err := h.Users.GetVehicle(r.Context(), principal.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusBadRequest, "register a vehicle before planning a trip")
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	svcReq := services.PlanTripRequest{
		Origin:          domain.Coordinate{Lat: req.StartLat, Lon: req.StartLon},
		Destination:     domain.Coordinate{Lat: req.EndLat, Lon: req.EndLon},
		Vehicle:         vehicle.Profile(h.Policy.DefaultChargeRate),
		CorridorWidthKm: req.CorridorWidthKm,
	}
	policy := services.PlanPolicy{
		CorridorWidthKm:       h.Policy.CorridorWidthKm,
		Charge:                services.ChargePolicy(h.Policy.ChargeStrategy),
		EmissionFactorKgPerKm: h.Policy.EmissionFactorKgPerKm,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Routes, h.Directory, policy)
	if err != nil {
		metrics.TripPlans.WithLabelValues("error").Inc()
		writeDomainError(w, r, err)
		return
	}

	outcome := "feasible"
	if !plan.Feasible {
		outcome = "infeasible"
	}
	metrics.TripPlans.WithLabelValues(outcome).Inc()

	record := &domain.TripRecord{
		ID:                   uuid.NewString(),
		UserID:               principal.UserID,
		Start:                plan.Origin,
		End:                  plan.Destination,
		Waypoints:            make([]domain.TripWaypoint, 0, len(plan.Stops)),
		TotalDistanceKm:      plan.TotalDistanceKm,
		EstimatedDurationMin: plan.TotalDurationMinutes,
		Feasible:             plan.Feasible,
		CreatedAt:            time.Now().UTC(),
	}
	for _, stop := range plan.Stops {
		record.Waypoints = append(record.Waypoints, domain.TripWaypoint{
			ChargerID:       stop.Candidate.ID,
			Name:            stop.Candidate.Name,
			DistanceAlongKm: stop.Candidate.DistanceAlongKm,
			ChargeMinutes:   stop.ChargeMinutes,
		})
	}
	if err := h.Trips.SaveTrip(r.Context(), record); err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.TripPlanResponse{
		TripID:               record.ID,
		StartLat:             plan.Origin.Lat,
		StartLon:             plan.Origin.Lon,
		EndLat:               plan.Destination.Lat,
		EndLon:               plan.Destination.Lon,
		Stops:                make([]dto.TripStopResponse, 0, len(plan.Stops)),
		TotalDistanceKm:      plan.TotalDistanceKm,
		DriveMinutes:         plan.DriveMinutes,
		ChargeMinutes:        plan.ChargeMinutes,
		TotalDurationMinutes: plan.TotalDurationMinutes,
		CO2SavedKg:           plan.CO2SavedKg,
		Feasible:             plan.Feasible,
	}
	for _, stop := range plan.Stops {
		res.Stops = append(res.Stops, dto.TripStopResponse{
			ChargerID:        stop.Candidate.ID,
			Name:             stop.Candidate.Name,
			City:             stop.Candidate.City,
			DistanceAlongKm:  stop.Candidate.DistanceAlongKm,
			ArrivalRangeKm:   stop.ArrivalRangeKm,
			ChargeMinutes:    stop.ChargeMinutes,
			DepartureRangeKm: stop.DepartureRangeKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// History returns the caller's planned trips, newest first.
func (h *TripHandler) History(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	trips, err := h.Trips.ListUserTrips(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.TripHistoryResponse{Results: make([]dto.TripRecordResponse, 0, len(trips))}
	for _, t := range trips {
		waypoints := make([]dto.TripWaypointResponse, 0, len(t.Waypoints))
		for _, wp := range t.Waypoints {
			waypoints = append(waypoints, dto.TripWaypointResponse{
				ChargerID:       wp.ChargerID,
				Name:            wp.Name,
				DistanceAlongKm: wp.DistanceAlongKm,
				ChargeMinutes:   wp.ChargeMinutes,
			})
		}
		res.Results = append(res.Results, dto.TripRecordResponse{
			ID:                   t.ID,
			StartLat:             t.Start.Lat,
			StartLon:             t.Start.Lon,
			EndLat:               t.End.Lat,
			EndLon:               t.End.Lon,
			Waypoints:            waypoints,
			TotalDistanceKm:      t.TotalDistanceKm,
			EstimatedDurationMin: t.EstimatedDurationMin,
			Feasible:             t.Feasible,
			CreatedAt:            t.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
