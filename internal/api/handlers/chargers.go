package handlers

import (
	"net/http"
	"sort"

	"github.com/yismin/EV-charging-tunisia/internal/api/dto"
	"github.com/yismin/EV-charging-tunisia/internal/config"
	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/geo"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// ChargerHandler exposes the public charger directory.
type ChargerHandler struct {
	Repo   ports.ChargerRepository
	Policy config.PlannerPolicy
}

// List returns one page of the full directory.
func (h *ChargerHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.respondPage(w, r, ports.ChargerFilter{Skip: skip, Limit: limit})
}

// Search filters the directory by city, usage type, connector, status,
// and minimum rating.
func (h *ChargerHandler) Search(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter := ports.ChargerFilter{
		City:      r.URL.Query().Get("city"),
		UsageType: r.URL.Query().Get("usage_type"),
		Skip:      skip,
		Limit:     limit,
	}

	if raw := r.URL.Query().Get("connector_type"); raw != "" {
		connector, err := domain.ParseConnectorType(raw)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		filter.Connector = connector
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseChargerStatus(raw)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		filter.Status = status
	}
	minRating, err := queryFloat(r, "min_rating", 0)
	if err != nil || minRating < 0 || minRating > 5 {
		writeError(w, r, http.StatusBadRequest, "min_rating must be a number between 0 and 5")
		return
	}
	filter.MinRating = minRating

	h.respondPage(w, r, filter)
}

func (h *ChargerHandler) respondPage(w http.ResponseWriter, r *http.Request, filter ports.ChargerFilter) {
	summaries, total, err := h.Repo.ListChargers(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.PaginatedChargersResponse{
		Total:   total,
		Skip:    filter.Skip,
		Limit:   filter.Limit,
		Results: make([]dto.ChargerResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		res.Results = append(res.Results, toChargerResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Nearby returns chargers within a radius of a point, closest first. The
// distance is straight-line; the duration estimate divides it by the
// policy's average road speed.
func (h *ChargerHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := queryFloat(r, "lon", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lon must be a number")
		return
	}
	center := domain.Coordinate{Lat: lat, Lon: lon}
	if err := center.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	radius, err := queryFloat(r, "radius_km", h.Policy.NearbyRadiusKm)
	if err != nil || radius <= 0 || radius > 500 {
		writeError(w, r, http.StatusBadRequest, "radius_km must be a number between 0 and 500")
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil || limit < 1 || limit > 100 {
		writeError(w, r, http.StatusBadRequest, "limit must be an integer between 1 and 100")
		return
	}

	var connector domain.ConnectorType
	if raw := r.URL.Query().Get("connector_type"); raw != "" {
		if connector, err = domain.ParseConnectorType(raw); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}
	var status domain.ChargerStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, err = domain.ParseChargerStatus(raw); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	box := geo.BoundingBoxAround([]domain.Coordinate{center}, radius)
	summaries, err := h.Repo.SummariesInRegion(r.Context(), box)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.NearbyChargersResponse{Results: make([]dto.NearbyChargerResponse, 0, len(summaries))}
	for _, s := range summaries {
		if connector != "" && !s.HasConnector(connector) {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}

		// The box is square; trim its corners back to the circle.
		dist := geo.DistanceKm(center, s.Location)
		if dist > radius {
			continue
		}

		res.Results = append(res.Results, dto.NearbyChargerResponse{
			ChargerResponse: toChargerResponse(s),
			DistanceKm:      dist,
			DurationMinutes: dist / h.Policy.AverageSpeedKmh * 60,
			DistanceType:    "straight_line",
		})
	}

	sort.Slice(res.Results, func(i, j int) bool {
		if res.Results[i].DistanceKm != res.Results[j].DistanceKm {
			return res.Results[i].DistanceKm < res.Results[j].DistanceKm
		}
		return res.Results[i].ID < res.Results[j].ID
	})
	if len(res.Results) > limit {
		res.Results = res.Results[:limit]
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one charger by id.
func (h *ChargerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := chargerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.Repo.GetCharger(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toChargerResponse(summary))
}

func toChargerResponse(s *domain.ChargerSummary) dto.ChargerResponse {
	connectors := make([]string, 0, len(s.Connectors))
	for _, c := range s.Connectors {
		connectors = append(connectors, string(c))
	}

	return dto.ChargerResponse{
		ID:             s.ID,
		Name:           s.Name,
		City:           s.City,
		Latitude:       s.Location.Lat,
		Longitude:      s.Location.Lon,
		UsageType:      s.UsageType,
		ConnectorTypes: connectors,
		Status:         string(s.Status),
		AvgRating:      s.AvgRating,
		ReviewCount:    s.ReviewCount,
		ReportCount:    s.ReportCount,
	}
}
