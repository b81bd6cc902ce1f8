package domain

import "context"

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	Update(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	// ListInRange returns donations whose date lies in [from, to], both ends
	// inclusive, ordered by donation date.
	ListInRange(ctx context.Context, from, to string) ([]Donation, error)
	ListPendingThankYou(ctx context.Context, limit int) ([]Donation, error)
	SetSummary(ctx context.Context, id, summary string) error
}

// DonorRepository reads donors.
type DonorRepository interface {
	GetByID(ctx context.Context, id string) (*Donor, error)
}

// AnalyticsRepository persists computed analytics snapshots.
type AnalyticsRepository interface {
	Create(ctx context.Context, record *Analytics) error
	GetByID(ctx context.Context, id string) (*Analytics, error)
}
