package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"donationsrv/internal/domain"
)

type analyticsRequest struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type analyticsResponse struct {
	ID              string                 `json:"id"`
	PeriodFrom      string                 `json:"period_from"`
	PeriodTo        string                 `json:"period_to"`
	Stats           json.RawMessage        `json:"stats"`
	Narrative       string                 `json:"narrative"`
	NarrativeSource domain.NarrativeSource `json:"narrative_source"`
	CreatedAt       time.Time              `json:"created_at"`
}

func toAnalyticsResponse(rec *domain.Analytics) analyticsResponse {
	stats := rec.Stats
	if len(stats) == 0 {
		stats = json.RawMessage(`{}`)
	}
	return analyticsResponse{
		ID:              rec.ID,
		PeriodFrom:      rec.PeriodFrom,
		PeriodTo:        rec.PeriodTo,
		Stats:           stats,
		Narrative:       rec.Narrative,
		NarrativeSource: rec.NarrativeSource,
		CreatedAt:       rec.CreatedAt,
	}
}

// optional turns an absent field into an untyped nil for period resolution.
func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// AnalyticsRun computes and stores statistics for the requested period, or
// the trailing twelve months when the body names none.
func (a *App) AnalyticsRun(w http.ResponseWriter, r *http.Request) {
	var req analyticsRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	rec, err := a.Svc.RunAnalytics(r.Context(), optional(req.From), optional(req.To))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toAnalyticsResponse(rec))
}

func (a *App) AnalyticsGet(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Svc.GetAnalytics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toAnalyticsResponse(rec))
}
