package repo

import (
	"context"
	"fmt"

	"donationsrv/internal/domain"
	"donationsrv/internal/infra"
	"donationsrv/internal/sqlinline"
)

// DonorRepositoryPG implements DonorRepository using PostgreSQL.
type DonorRepositoryPG struct {
	db infra.SQLExecutor
}

func NewDonorRepository(db infra.SQLExecutor) *DonorRepositoryPG {
	return &DonorRepositoryPG{db: db}
}

// GetByID loads one donor.
func (r *DonorRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	var d domain.Donor
	row := r.db.QueryRow(ctx, sqlinline.QGetDonor, id)
	if err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.IsRecurringDonor, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("get donor %s: %w", id, notFound(err))
	}
	return &d, nil
}

var _ domain.DonorRepository = (*DonorRepositoryPG)(nil)
