package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("req_id", obs.RequestID(r.Context())).
			Msg("encode response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps sentinel and provider errors onto HTTP statuses.
// Anything unmapped is logged and reported as a plain 500; internal detail
// never reaches the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
	case errors.As(err, &pe):
		log.Warn().Err(err).
			Str("provider", pe.Provider).
			Str("req_id", obs.RequestID(r.Context())).
			Msg("upstream provider failed")
		writeError(w, r, http.StatusBadGateway, pe.Provider+" is unavailable")
	default:
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("req_id", obs.RequestID(r.Context())).
			Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeStrict parses the body into v, rejecting unknown fields and
// trailing content.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// pageParams reads skip and limit query values with the listing defaults.
func pageParams(r *http.Request) (skip, limit int, err error) {
	skip, err = queryInt(r, "skip", 0)
	if err != nil || skip < 0 {
		return 0, 0, errors.New("skip must be a non-negative integer")
	}
	limit, err = queryInt(r, "limit", 20)
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, errors.New("limit must be an integer between 1 and 100")
	}
	return skip, limit, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// chargerID parses the {id} path segment.
func chargerID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("charger id must be a positive integer")
	}
	return id, nil
}
