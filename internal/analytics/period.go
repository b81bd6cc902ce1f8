package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrMissingPeriod  = errors.New("period requires both from and to")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvertedPeriod = errors.New("period start is after period end")
)

// Period is an inclusive range of calendar dates formatted as YYYY-MM-DD.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Contains reports whether t falls on a day within the period, both ends
// inclusive.
func (p Period) Contains(t time.Time) bool {
	day := t.Format(dateLayout)
	return day >= p.From && day <= p.To
}

// DefaultPeriod is the trailing twelve months ending on now.
func DefaultPeriod(now time.Time) Period {
	return Period{
		From: now.AddDate(0, -12, 0).Format(dateLayout),
		To:   now.Format(dateLayout),
	}
}

// ResolvePeriod normalises explicit bounds into a Period. A bound may be nil,
// a string (YYYY-MM-DD or RFC 3339), a time.Time or a *time.Time; empty
// strings, zero times and nil pointers count as absent. Without bounds the
// trailing twelve months ending on now are used.
func ResolvePeriod(now time.Time, from, to any) (Period, error) {
	fromDay, hasFrom, err := normalizeDate(from)
	if err != nil {
		return Period{}, fmt.Errorf("from: %w", err)
	}
	toDay, hasTo, err := normalizeDate(to)
	if err != nil {
		return Period{}, fmt.Errorf("to: %w", err)
	}
	switch {
	case !hasFrom && !hasTo:
		return DefaultPeriod(now), nil
	case hasFrom != hasTo:
		return Period{}, ErrMissingPeriod
	}
	if fromDay > toDay {
		return Period{}, fmt.Errorf("%w: %s > %s", ErrInvertedPeriod, fromDay, toDay)
	}
	return Period{From: fromDay, To: toDay}, nil
}

func normalizeDate(v any) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return "", false, nil
		}
		if t, err := time.Parse(dateLayout, s); err == nil {
			return t.Format(dateLayout), true, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.Format(dateLayout), true, nil
		}
		return "", false, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	case time.Time:
		if val.IsZero() {
			return "", false, nil
		}
		return val.Format(dateLayout), true, nil
	case *time.Time:
		if val == nil || val.IsZero() {
			return "", false, nil
		}
		return val.Format(dateLayout), true, nil
	default:
		return "", false, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, v)
	}
}
