package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"donationsrv/internal/domain"
	"donationsrv/internal/infra"
	"donationsrv/internal/sqlinline"
)

// AnalyticsRepositoryPG implements AnalyticsRepository using PostgreSQL.
type AnalyticsRepositoryPG struct {
	db infra.SQLExecutor
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(db infra.SQLExecutor) *AnalyticsRepositoryPG {
	return &AnalyticsRepositoryPG{db: db}
}

// Create stores a snapshot and fills in its ID and creation time.
func (r *AnalyticsRepositoryPG) Create(ctx context.Context, rec *domain.Analytics) error {
	stats := rec.Stats
	if len(stats) == 0 {
		stats = json.RawMessage(`{}`)
	}
	row := r.db.QueryRow(ctx, sqlinline.QInsertAnalytics,
		rec.PeriodFrom,
		rec.PeriodTo,
		stats,
		rec.Narrative,
		string(rec.NarrativeSource),
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("insert analytics: %w", err)
	}
	return nil
}

// GetByID loads one snapshot.
func (r *AnalyticsRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Analytics, error) {
	var (
		rec    domain.Analytics
		stats  []byte
		source string
	)
	row := r.db.QueryRow(ctx, sqlinline.QGetAnalytics, id)
	if err := row.Scan(&rec.ID, &rec.PeriodFrom, &rec.PeriodTo, &stats, &rec.Narrative, &source, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("get analytics %s: %w", id, notFound(err))
	}
	rec.Stats = json.RawMessage(stats)
	rec.NarrativeSource = domain.NarrativeSource(source)
	return &rec, nil
}

var _ domain.AnalyticsRepository = (*AnalyticsRepositoryPG)(nil)
