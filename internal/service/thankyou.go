package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"donationsrv/internal/domain"
	"donationsrv/internal/narrative"
)

// GenerateThankYou composes a thank-you message for the donation, stores it
// as the donation summary and announces it.
func (s *Donations) GenerateThankYou(ctx context.Context, id string) (narrative.Outcome, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return narrative.Outcome{}, err
	}
	return s.thankYou(ctx, *d)
}

func (s *Donations) thankYou(ctx context.Context, d domain.Donation) (narrative.Outcome, error) {
	if !d.HasDonor() {
		return narrative.Outcome{}, fmt.Errorf("donation %s: %w", d.ID, domain.ErrDonorRequired)
	}
	donor, err := s.donors.GetByID(ctx, *d.DonorID)
	if err != nil {
		return narrative.Outcome{}, fmt.Errorf("donation %s: %w", d.ID, err)
	}

	out := s.composer.ThankYou(ctx, d, *donor)
	if err := s.donations.SetSummary(ctx, d.ID, out.Text); err != nil {
		return narrative.Outcome{}, err
	}
	if err := s.events.ThankYouComposed(ctx, d, out.Text, out.Source); err != nil {
		s.logger.Warn().Err(err).Str("donation_id", d.ID).Msg("thank-you event not published")
	}
	return out, nil
}

// BackfillThankYous composes messages for up to limit donor-linked donations
// that have no summary yet, running at most concurrency at a time. It returns
// how many were stored. Individual failures are logged and skipped.
func (s *Donations) BackfillThankYous(ctx context.Context, limit, concurrency int) (int, error) {
	pending, err := s.donations.ListPendingThankYou(ctx, limit)
	if err != nil {
		return 0, err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, d := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := s.thankYou(gctx, d)
			if err != nil {
				s.logger.Error().Err(err).Str("donation_id", d.ID).Msg("backfill thank-you failed")
				return nil
			}
			done.Add(1)
			s.logger.Debug().Str("donation_id", d.ID).Str("source", string(out.Source)).Msg("backfill thank-you stored")
			return nil
		})
	}
	err = g.Wait()
	return int(done.Load()), err
}
