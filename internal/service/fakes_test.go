package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"donationsrv/internal/domain"
)

const (
	donationID = "7b0c1a5e-4d2f-4a55-9a43-6a0b9c1d2e01"
	donorID    = "1f6e2d3c-9b8a-4f7e-8d6c-5b4a39281706"
)

type memDonations struct {
	mu      sync.Mutex
	items   map[string]domain.Donation
	summary map[string]string
	listErr error
	setErr  error
	ranges  [][2]string
	// stray rows are returned by ListInRange whatever the range.
	stray []domain.Donation
}

func newMemDonations(items ...domain.Donation) *memDonations {
	m := &memDonations{items: map[string]domain.Donation{}, summary: map[string]string{}}
	for _, d := range items {
		m.items[d.ID] = d
	}
	return m
}

func (m *memDonations) Create(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = "created"
	if d.DonationDate.IsZero() {
		d.DonationDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	m.items[d.ID] = *d
	return nil
}

func (m *memDonations) Update(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[d.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[d.ID] = *d
	return nil
}

func (m *memDonations) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (m *memDonations) ListInRange(_ context.Context, from, to string) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ranges = append(m.ranges, [2]string{from, to})
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := append([]domain.Donation(nil), m.stray...)
	for _, d := range m.items {
		day := d.DonationDate.Format(time.DateOnly)
		if day >= from && day <= to {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDonations) ListPendingThankYou(_ context.Context, limit int) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Donation
	for _, d := range m.items {
		if d.HasDonor() && m.summary[d.ID] == "" && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDonations) SetSummary(_ context.Context, id, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	m.summary[id] = summary
	return nil
}

type memDonors map[string]domain.Donor

func (m memDonors) GetByID(_ context.Context, id string) (*domain.Donor, error) {
	d, ok := m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

type memAnalytics struct {
	saved []domain.Analytics
}

func (m *memAnalytics) Create(_ context.Context, rec *domain.Analytics) error {
	rec.ID = "a-1"
	m.saved = append(m.saved, *rec)
	return nil
}

func (m *memAnalytics) GetByID(_ context.Context, id string) (*domain.Analytics, error) {
	for _, rec := range m.saved {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

type recordedEvents struct {
	mu        sync.Mutex
	thankYous []string
	analytics []string
	err       error
}

func (r *recordedEvents) ThankYouComposed(_ context.Context, d domain.Donation, _ string, _ domain.NarrativeSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.thankYous = append(r.thankYous, d.ID)
	return r.err
}

func (r *recordedEvents) AnalyticsComposed(_ context.Context, rec domain.Analytics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analytics = append(r.analytics, rec.ID)
	return r.err
}

func (r *recordedEvents) Close() error { return nil }

type fixedCity struct {
	city string
	err  error
	ips  []string
}

func (f *fixedCity) City(ip string) (string, error) {
	f.ips = append(f.ips, ip)
	return f.city, f.err
}

var errBoom = errors.New("boom")
