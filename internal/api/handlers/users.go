package handlers

import (
	"net/http"

	"github.com/yismin/EV-charging-tunisia/internal/api/dto"
	"github.com/yismin/EV-charging-tunisia/internal/auth"
	"github.com/yismin/EV-charging-tunisia/internal/config"
	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// UserHandler exposes the caller's profile, vehicle, and activity stats.
type UserHandler struct {
	Users  ports.UserRepository
	Policy config.PlannerPolicy
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.Users.GetUser(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

func (h *UserHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	vehicle, err := h.Users.GetVehicle(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toVehicleResponse(vehicle))
}

// PutVehicle stores the caller's vehicle, replacing any earlier record.
func (h *UserHandler) PutVehicle(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.VehicleRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	connector, err := domain.ParseConnectorType(req.ConnectorType)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if req.RangeKm <= 0 || req.RangeKm > 2000 {
		writeError(w, r, http.StatusBadRequest, "range_km must be between 0 and 2000")
		return
	}
	if req.ChargeRateKmPerMin < 0 || req.ChargeRateKmPerMin > 50 {
		writeError(w, r, http.StatusBadRequest, "charge_rate_km_per_min must be between 0 and 50")
		return
	}

	vehicle := &domain.Vehicle{
		UserID:             principal.UserID,
		Connector:          connector,
		RangeKm:            req.RangeKm,
		ChargeRateKmPerMin: req.ChargeRateKmPerMin,
	}
	if err := h.Users.UpsertVehicle(r.Context(), vehicle); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toVehicleResponse(vehicle))
}

// Stats returns the caller's activity aggregates. The CO2 figure applies
// the configured emission factor to the lifetime planned distance.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Users.GetStats(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StatsResponse{
		TotalTrips:      stats.Trips,
		TotalReviews:    stats.Reviews,
		TotalFavorites:  stats.Favorites,
		TotalReports:    stats.Reports,
		TotalDistanceKm: stats.TotalDistanceKm,
		CO2SavedKg:      stats.TotalDistanceKm * h.Policy.EmissionFactorKgPerKm,
	})
}

func toVehicleResponse(v *domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ConnectorType:      string(v.Connector),
		RangeKm:            v.RangeKm,
		ChargeRateKmPerMin: v.ChargeRateKmPerMin,
	}
}
