package handlers

import (
	"net/http"

	"github.com/yismin/EV-charging-tunisia/internal/api/dto"
	"github.com/yismin/EV-charging-tunisia/internal/auth"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// FavoriteHandler exposes the caller's saved chargers.
type FavoriteHandler struct {
	Favorites ports.FavoriteRepository
	Chargers  ports.ChargerRepository
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	favorites, err := h.Favorites.ListFavorites(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.PaginatedChargersResponse{
		Total:   len(favorites),
		Limit:   len(favorites),
		Results: make([]dto.ChargerResponse, 0, len(favorites)),
	}
	for _, s := range favorites {
		res.Results = append(res.Results, toChargerResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Add saves a charger to the caller's favorites. Saving twice is fine.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := chargerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.Chargers.GetCharger(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Favorites.AddFavorite(r.Context(), principal.UserID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toChargerResponse(summary))
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := chargerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Favorites.RemoveFavorite(r.Context(), principal.UserID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
