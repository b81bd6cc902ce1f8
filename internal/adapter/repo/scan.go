package repo

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"donationsrv/internal/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// dateParam passes a zero time as SQL NULL so the column default applies.
func dateParam(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
