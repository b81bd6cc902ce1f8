package repo

import (
	"context"
	"fmt"

	"donationsrv/internal/domain"
	"donationsrv/internal/infra"
	"donationsrv/internal/sqlinline"
)

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	db infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(db infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{db: db}
}

// Create inserts a new donation record and fills in its generated fields.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	row := r.db.QueryRow(ctx, sqlinline.QInsertDonation,
		d.Amount,
		d.CurrencyCode,
		dateParam(d.DonationDate),
		d.Campaign,
		d.Cause,
		d.City,
		stringValue(d.DonorID),
		d.DonorName,
		d.DonorEmail,
		d.DonorPhone,
	)
	if err := row.Scan(&d.ID, &d.DonationDate, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of an existing donation.
func (r *DonationRepositoryPG) Update(ctx context.Context, d *domain.Donation) error {
	row := r.db.QueryRow(ctx, sqlinline.QUpdateDonation,
		d.ID,
		d.Amount,
		d.CurrencyCode,
		dateParam(d.DonationDate),
		d.Campaign,
		d.Cause,
		d.City,
		stringValue(d.DonorID),
		d.DonorName,
		d.DonorEmail,
		d.DonorPhone,
	)
	if err := row.Scan(&d.DonationDate, &d.UpdatedAt); err != nil {
		return fmt.Errorf("update donation %s: %w", d.ID, notFound(err))
	}
	return nil
}

// GetByID loads one donation.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	d, err := scanDonation(r.db.QueryRow(ctx, sqlinline.QGetDonation, id))
	if err != nil {
		return nil, fmt.Errorf("get donation %s: %w", id, notFound(err))
	}
	return &d, nil
}

// ListInRange returns donations dated between from and to, both inclusive.
func (r *DonationRepositoryPG) ListInRange(ctx context.Context, from, to string) ([]domain.Donation, error) {
	return r.list(ctx, sqlinline.QListDonationsInRange, from, to)
}

// ListPendingThankYou returns donor-linked donations that have no summary yet.
func (r *DonationRepositoryPG) ListPendingThankYou(ctx context.Context, limit int) ([]domain.Donation, error) {
	return r.list(ctx, sqlinline.QListPendingThankYou, limit)
}

// SetSummary stores a composed thank-you message on the donation.
func (r *DonationRepositoryPG) SetSummary(ctx context.Context, id, summary string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QSetDonationSummary, id, summary)
	if err != nil {
		return fmt.Errorf("set summary %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set summary %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *DonationRepositoryPG) list(ctx context.Context, query string, args ...any) ([]domain.Donation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	items := []domain.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return items, nil
}

func scanDonation(row scanner) (domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(
		&d.ID,
		&d.Amount,
		&d.CurrencyCode,
		&d.DonationDate,
		&d.Campaign,
		&d.Cause,
		&d.City,
		&d.DonorID,
		&d.DonorName,
		&d.DonorEmail,
		&d.DonorPhone,
		&d.Summary,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
