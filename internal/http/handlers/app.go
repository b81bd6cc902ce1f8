package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"donationsrv/internal/analytics"
	"donationsrv/internal/domain"
	"donationsrv/internal/middleware"
	"donationsrv/internal/narrative"
	"donationsrv/internal/service"
)

// Service is the use-case surface the handlers call.
type Service interface {
	Create(ctx context.Context, in service.DonationInput) (*domain.Donation, error)
	Update(ctx context.Context, id string, in service.DonationInput) (*domain.Donation, error)
	Get(ctx context.Context, id string) (*domain.Donation, error)
	GenerateThankYou(ctx context.Context, id string) (narrative.Outcome, error)
	RunAnalytics(ctx context.Context, from, to any) (*domain.Analytics, error)
	GetAnalytics(ctx context.Context, id string) (*domain.Analytics, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	Svc    Service
	DB     Pinger
	Logger zerolog.Logger
}

func NewApp(svc Service, db Pinger, logger zerolog.Logger) *App {
	return &App{Svc: svc, DB: db, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// fail maps a service error to a response. Unknown errors are logged and
// reported as 500 without detail.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", domain.ErrInvalidAmount.Error())
	case errors.Is(err, domain.ErrDonorRequired):
		a.error(w, http.StatusBadRequest, "donor_required", domain.ErrDonorRequired.Error())
	case errors.Is(err, analytics.ErrMissingPeriod),
		errors.Is(err, analytics.ErrInvalidDate),
		errors.Is(err, analytics.ErrInvertedPeriod):
		a.error(w, http.StatusBadRequest, "invalid_period", err.Error())
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
