package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yismin/EV-charging-tunisia/internal/api/dto"
	"github.com/yismin/EV-charging-tunisia/internal/auth"
	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// ReviewHandler exposes charger reviews and status reports.
type ReviewHandler struct {
	Reviews  ports.ReviewRepository
	Chargers ports.ChargerRepository
}

// Create stores the caller's review of a charger. A second review of the
// same charger replaces the first.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.Chargers.GetCharger(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req dto.ReviewRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	review := &domain.Review{
		ID:        uuid.NewString(),
		UserID:    principal.UserID,
		ChargerID: id,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Reviews.UpsertReview(r.Context(), review); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toReviewResponse(review))
}

// List returns a charger's reviews, newest first.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := chargerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.Chargers.GetCharger(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	reviews, err := h.Reviews.ListChargerReviews(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ReviewsResponse{Results: make([]dto.ReviewResponse, 0, len(reviews))}
	for _, review := range reviews {
		res.Results = append(res.Results, toReviewResponse(review))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Report records a status observation and moves the charger to the
// reported condition.
func (h *ReviewHandler) Report(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.Chargers.GetCharger(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req dto.ReportRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	issue, err := domain.ParseChargerStatus(req.IssueType)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	report := &domain.StatusReport{
		ID:          uuid.NewString(),
		UserID:      principal.UserID,
		ChargerID:   id,
		IssueType:   issue,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Reviews.CreateReport(r.Context(), report); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ReportResponse{
		ID:            report.ID,
		ChargerID:     report.ChargerID,
		IssueType:     string(report.IssueType),
		Description:   report.Description,
		ChargerStatus: string(report.IssueType),
		CreatedAt:     report.CreatedAt,
	})
}

func toReviewResponse(review *domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		ChargerID: review.ChargerID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
