package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"donationsrv/internal/domain"
	"donationsrv/internal/middleware"
	"donationsrv/internal/service"
)

type donationRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode string           `json:"currency_code"`
	DonationDate string           `json:"donation_date"`
	Campaign     string           `json:"campaign"`
	Cause        string           `json:"cause"`
	City         string           `json:"city"`
	DonorID      string           `json:"donor_id"`
}

type donationResponse struct {
	ID           string           `json:"id"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode string           `json:"currency_code"`
	DonationDate string           `json:"donation_date"`
	Campaign     string           `json:"campaign"`
	Cause        string           `json:"cause"`
	City         string           `json:"city"`
	DonorID      *string          `json:"donor_id"`
	DonorName    string           `json:"donor_name"`
	DonorEmail   string           `json:"donor_email"`
	DonorPhone   string           `json:"donor_phone"`
	Summary      string           `json:"summary"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toDonationResponse(d *domain.Donation) donationResponse {
	resp := donationResponse{
		ID:           d.ID,
		CurrencyCode: d.CurrencyCode,
		DonationDate: d.DonationDate.Format(time.DateOnly),
		Campaign:     d.Campaign,
		Cause:        d.Cause,
		City:         d.City,
		DonorID:      d.DonorID,
		DonorName:    d.DonorName,
		DonorEmail:   d.DonorEmail,
		DonorPhone:   d.DonorPhone,
		Summary:      d.Summary,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Amount.Valid {
		amount := d.Amount.Decimal
		resp.Amount = &amount
	}
	return resp
}

func (req donationRequest) input(r *http.Request) service.DonationInput {
	return service.DonationInput{
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		DonationDate: req.DonationDate,
		Campaign:     req.Campaign,
		Cause:        req.Cause,
		City:         req.City,
		DonorID:      req.DonorID,
		ClientIP:     middleware.ClientIP(r),
	}
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	d, err := a.Svc.Create(r.Context(), req.input(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toDonationResponse(d))
}

func (a *App) DonationsGet(w http.ResponseWriter, r *http.Request) {
	d, err := a.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDonationResponse(d))
}

func (a *App) DonationsUpdate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	d, err := a.Svc.Update(r.Context(), chi.URLParam(r, "id"), req.input(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDonationResponse(d))
}

// DonationsThankYou composes and stores a thank-you message.
func (a *App) DonationsThankYou(w http.ResponseWriter, r *http.Request) {
	out, err := a.Svc.GenerateThankYou(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"message": out.Text,
		"source":  out.Source,
	})
}
