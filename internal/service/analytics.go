package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"donationsrv/internal/analytics"
	"donationsrv/internal/domain"
)

// RunAnalytics aggregates the donations in the resolved period, composes a
// narrative, stores the snapshot and announces it. from and to follow
// analytics.ResolvePeriod.
func (s *Donations) RunAnalytics(ctx context.Context, from, to any) (*domain.Analytics, error) {
	period, err := analytics.ResolvePeriod(s.now(), from, to)
	if err != nil {
		return nil, err
	}

	records, err := s.donations.ListInRange(ctx, period.From, period.To)
	if err != nil {
		return nil, err
	}
	records = inPeriod(records, period, s.logger)
	res := analytics.Aggregate(records, period)
	out := s.composer.Narrative(ctx, res)

	stats, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	rec := &domain.Analytics{
		PeriodFrom:      period.From,
		PeriodTo:        period.To,
		Stats:           stats,
		Narrative:       out.Text,
		NarrativeSource: out.Source,
	}
	if err := s.analytics.Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.events.AnalyticsComposed(ctx, *rec); err != nil {
		s.logger.Warn().Err(err).Str("analytics_id", rec.ID).Msg("analytics event not published")
	}
	s.logger.Info().
		Str("analytics_id", rec.ID).
		Str("from", period.From).
		Str("to", period.To).
		Int("donations", res.TotalCount).
		Str("source", string(out.Source)).
		Msg("analytics stored")
	return rec, nil
}

// GetAnalytics loads a stored snapshot.
func (s *Donations) GetAnalytics(ctx context.Context, id string) (*domain.Analytics, error) {
	if !validID(id) {
		return nil, fmt.Errorf("analytics %q: %w", id, domain.ErrNotFound)
	}
	return s.analytics.GetByID(ctx, id)
}

// inPeriod drops records whose date falls outside period. Repositories filter
// by range already; a stray row would otherwise skew the totals.
func inPeriod(records []domain.Donation, period analytics.Period, logger zerolog.Logger) []domain.Donation {
	kept := records[:0:0]
	for _, d := range records {
		if !period.Contains(d.DonationDate) {
			logger.Warn().
				Str("donation_id", d.ID).
				Time("donation_date", d.DonationDate).
				Msg("donation outside analytics period skipped")
			continue
		}
		kept = append(kept, d)
	}
	return kept
}
