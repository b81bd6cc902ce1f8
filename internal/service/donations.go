package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"donationsrv/internal/analytics"
	"donationsrv/internal/domain"
	"donationsrv/internal/impact"
)

// DonationInput carries the writable fields of a donation. ClientIP is only
// used to fill City when the caller left it blank.
type DonationInput struct {
	Amount       *decimal.Decimal
	CurrencyCode string
	DonationDate string
	Campaign     string
	Cause        string
	City         string
	DonorID      string
	ClientIP     string
}

// Create validates input, fills derived fields and stores a new donation.
func (s *Donations) Create(ctx context.Context, in DonationInput) (*domain.Donation, error) {
	d := &domain.Donation{}
	if err := s.apply(ctx, d, in); err != nil {
		return nil, err
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update replaces the writable fields of an existing donation.
func (s *Donations) Update(ctx context.Context, id string, in DonationInput) (*domain.Donation, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, d, in); err != nil {
		return nil, err
	}
	if err := s.donations.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get loads a donation by id.
func (s *Donations) Get(ctx context.Context, id string) (*domain.Donation, error) {
	if !validID(id) {
		return nil, fmt.Errorf("donation %q: %w", id, domain.ErrNotFound)
	}
	return s.donations.GetByID(ctx, id)
}

func (s *Donations) apply(ctx context.Context, d *domain.Donation, in DonationInput) error {
	if in.Amount != nil && !in.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	d.Amount = decimal.NullDecimal{}
	if in.Amount != nil {
		d.Amount = decimal.NewNullDecimal(*in.Amount)
	}

	d.DonationDate = time.Time{}
	if raw := strings.TrimSpace(in.DonationDate); raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return fmt.Errorf("donation date %q: %w", raw, analytics.ErrInvalidDate)
		}
		d.DonationDate = day
	}

	d.CurrencyCode = strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	d.Campaign = strings.TrimSpace(in.Campaign)
	d.Cause = strings.TrimSpace(in.Cause)
	d.City = strings.TrimSpace(in.City)
	if d.Cause != "" && !impact.Known(d.Cause) {
		s.logger.Debug().Str("cause", d.Cause).Msg("cause has no impact entry, thank-you uses the default")
	}

	d.DonorID = nil
	d.ApplyDonorSnapshot(domain.Donor{})
	if donorID := strings.TrimSpace(in.DonorID); donorID != "" {
		if !validID(donorID) {
			return fmt.Errorf("donor %q: %w", donorID, domain.ErrNotFound)
		}
		donor, err := s.donors.GetByID(ctx, donorID)
		if err != nil {
			return err
		}
		d.DonorID = &donor.ID
		d.ApplyDonorSnapshot(*donor)
	}

	if d.City == "" && in.ClientIP != "" && s.cities != nil {
		city, err := s.cities.City(in.ClientIP)
		if err != nil {
			s.logger.Debug().Err(err).Str("ip", in.ClientIP).Msg("city lookup failed")
		} else {
			d.City = city
		}
	}
	return nil
}
