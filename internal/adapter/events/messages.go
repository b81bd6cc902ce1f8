package events

import (
	"encoding/json"
	"time"

	"donationsrv/internal/domain"
)

// Routing keys used on the exchange.
const (
	KeyThankYouComposed  = "thankyou.composed"
	KeyAnalyticsComposed = "analytics.composed"
)

// ThankYouComposed is published after a thank-you message is stored.
type ThankYouComposed struct {
	DonationID string                 `json:"donation_id"`
	DonorID    string                 `json:"donor_id"`
	Message    string                 `json:"message"`
	Source     domain.NarrativeSource `json:"source"`
	ComposedAt time.Time              `json:"composed_at"`
}

// AnalyticsComposed is published after an analytics snapshot is stored.
type AnalyticsComposed struct {
	AnalyticsID string                 `json:"analytics_id"`
	PeriodFrom  string                 `json:"period_from"`
	PeriodTo    string                 `json:"period_to"`
	Source      domain.NarrativeSource `json:"source"`
	ComposedAt  time.Time              `json:"composed_at"`
}

func NewThankYouComposed(donation domain.Donation, message string, source domain.NarrativeSource, now time.Time) ThankYouComposed {
	donorID := ""
	if donation.DonorID != nil {
		donorID = *donation.DonorID
	}
	return ThankYouComposed{
		DonationID: donation.ID,
		DonorID:    donorID,
		Message:    message,
		Source:     source,
		ComposedAt: now.UTC(),
	}
}

func NewAnalyticsComposed(rec domain.Analytics, now time.Time) AnalyticsComposed {
	return AnalyticsComposed{
		AnalyticsID: rec.ID,
		PeriodFrom:  rec.PeriodFrom,
		PeriodTo:    rec.PeriodTo,
		Source:      rec.NarrativeSource,
		ComposedAt:  now.UTC(),
	}
}

func (m ThankYouComposed) ToJSON() ([]byte, error)  { return json.Marshal(m) }
func (m AnalyticsComposed) ToJSON() ([]byte, error) { return json.Marshal(m) }
