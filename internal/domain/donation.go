package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation represents a supporter contribution record.
type Donation struct {
	ID           string
	Amount       decimal.NullDecimal
	CurrencyCode string
	DonationDate time.Time
	Campaign     string
	Cause        string
	City         string
	DonorID      *string
	DonorName    string
	DonorEmail   string
	DonorPhone   string
	Summary      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AmountValue returns the donation amount, treating a missing amount as zero.
func (d Donation) AmountValue() decimal.Decimal {
	if !d.Amount.Valid {
		return decimal.Zero
	}
	return d.Amount.Decimal
}

// HasDonor reports whether the donation is linked to a donor.
func (d Donation) HasDonor() bool {
	return d.DonorID != nil && *d.DonorID != ""
}

// ApplyDonorSnapshot copies the donor contact details onto the donation.
func (d *Donation) ApplyDonorSnapshot(donor Donor) {
	d.DonorName = donor.Name
	d.DonorEmail = donor.Email
	d.DonorPhone = donor.Phone
}
