package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"donationsrv/internal/analytics"
	"donationsrv/internal/domain"
)

func donationOn(id, day, cause, city, amt string) domain.Donation {
	date, err := time.Parse(time.DateOnly, day)
	if err != nil {
		panic(err)
	}
	return domain.Donation{
		ID:           id,
		Amount:       decimal.NewNullDecimal(decimal.RequireFromString(amt)),
		DonationDate: date,
		Cause:        cause,
		City:         city,
	}
}

func TestRunAnalytics_StoresSnapshot(t *testing.T) {
	repo := newMemDonations(
		donationOn("d-1", "2024-01-15", "Education", "Austin", "100"),
		donationOn("d-2", "2024-02-10", "Health", "Boston", "50"),
		donationOn("d-3", "2025-01-01", "Health", "Boston", "999"),
	)
	store := &memAnalytics{}
	ev := &recordedEvents{}
	svc := New(Deps{Donations: repo, Donors: memDonors{}, Analytics: store, Events: ev})

	rec, err := svc.RunAnalytics(context.Background(), "2024-01-01", "2024-12-31")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.ID != "a-1" || rec.PeriodFrom != "2024-01-01" || rec.PeriodTo != "2024-12-31" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.NarrativeSource != domain.NarrativeFallback {
		t.Fatalf("source = %q", rec.NarrativeSource)
	}

	var res analytics.Result
	if err := json.Unmarshal(rec.Stats, &res); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if res.TotalCount != 2 || !res.TotalAmount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected stats: %+v", res)
	}
	if len(ev.analytics) != 1 {
		t.Fatalf("events = %v", ev.analytics)
	}
}

func TestRunAnalytics_EmptyPeriod(t *testing.T) {
	store := &memAnalytics{}
	svc := New(Deps{Donations: newMemDonations(), Donors: memDonors{}, Analytics: store})

	rec, err := svc.RunAnalytics(context.Background(), "2023-01-01", "2023-01-31")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.NarrativeSource != domain.NarrativeEmpty {
		t.Fatalf("source = %q", rec.NarrativeSource)
	}
	if rec.Narrative != "No donation data available between 2023-01-01 and 2023-01-31." {
		t.Fatalf("narrative = %q", rec.Narrative)
	}
}

func TestRunAnalytics_DefaultPeriod(t *testing.T) {
	repo := newMemDonations()
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc := New(Deps{
		Donations: repo,
		Donors:    memDonors{},
		Analytics: &memAnalytics{},
		Now:       func() time.Time { return now },
	})

	if _, err := svc.RunAnalytics(context.Background(), nil, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := analytics.DefaultPeriod(now)
	if got := repo.ranges[0]; got[0] != want.From || got[1] != want.To {
		t.Fatalf("range = %v, want %v", got, want)
	}
}

func TestRunAnalytics_Errors(t *testing.T) {
	svc := New(Deps{Donations: newMemDonations(), Donors: memDonors{}, Analytics: &memAnalytics{}})
	if _, err := svc.RunAnalytics(context.Background(), "2024-01-01", nil); !errors.Is(err, analytics.ErrMissingPeriod) {
		t.Fatalf("expected ErrMissingPeriod, got %v", err)
	}

	repo := newMemDonations()
	repo.listErr = errBoom
	svc = New(Deps{Donations: repo, Donors: memDonors{}, Analytics: &memAnalytics{}})
	if _, err := svc.RunAnalytics(context.Background(), "2024-01-01", "2024-02-01"); !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestGetAnalytics(t *testing.T) {
	store := &memAnalytics{saved: []domain.Analytics{{ID: donationID, Narrative: "n"}}}
	svc := New(Deps{Donations: newMemDonations(), Donors: memDonors{}, Analytics: store})

	rec, err := svc.GetAnalytics(context.Background(), donationID)
	if err != nil || rec.Narrative != "n" {
		t.Fatalf("get: %+v, %v", rec, err)
	}
	if _, err := svc.GetAnalytics(context.Background(), "a-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunAnalytics_SkipsRowsOutsidePeriod(t *testing.T) {
	repo := newMemDonations(donationOn("d-1", "2024-03-01", "Education", "Austin", "40"))
	repo.stray = []domain.Donation{donationOn("d-9", "2023-12-31", "Education", "Austin", "1000")}
	var logs bytes.Buffer
	svc := New(Deps{
		Donations: repo,
		Donors:    memDonors{},
		Analytics: &memAnalytics{},
		Logger:    zerolog.New(&logs),
	})

	rec, err := svc.RunAnalytics(context.Background(), "2024-01-01", "2024-12-31")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var res analytics.Result
	if err := json.Unmarshal(rec.Stats, &res); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if res.TotalCount != 1 || !res.TotalAmount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("stray row counted: %+v", res)
	}
	if !strings.Contains(logs.String(), `"donation_id":"d-9"`) {
		t.Fatalf("skipped row not logged: %s", logs.String())
	}
}
