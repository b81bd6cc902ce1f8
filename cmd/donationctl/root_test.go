package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"donationsrv/internal/domain"
	"donationsrv/internal/narrative"
)

type stubOps struct {
	from, to       any
	thankYouID     string
	limit, workers int
	err            error
}

func (s *stubOps) GenerateThankYou(_ context.Context, id string) (narrative.Outcome, error) {
	s.thankYouID = id
	if s.err != nil {
		return narrative.Outcome{}, s.err
	}
	return narrative.Outcome{Text: "Dear Ada,", Source: domain.NarrativeGenerated}, nil
}

func (s *stubOps) RunAnalytics(_ context.Context, from, to any) (*domain.Analytics, error) {
	s.from, s.to = from, to
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Analytics{
		ID:              "a-1",
		PeriodFrom:      "2024-01-01",
		PeriodTo:        "2024-12-31",
		Stats:           json.RawMessage(`{"totalCount":3}`),
		Narrative:       "Three donations.",
		NarrativeSource: domain.NarrativeFallback,
	}, nil
}

func (s *stubOps) BackfillThankYous(_ context.Context, limit, concurrency int) (int, error) {
	s.limit, s.workers = limit, concurrency
	return 2, s.err
}

func run(t *testing.T, ops *stubOps, args ...string) (string, error) {
	t.Helper()
	released := false
	cmd := newRootCmdWith(func(context.Context) (operations, func(), error) {
		return ops, func() { released = true }, nil
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil && !released {
		t.Fatal("connection not released")
	}
	return out.String(), err
}

func TestAnalyticsCommand(t *testing.T) {
	ops := &stubOps{}
	out, err := run(t, ops, "analytics", "--from", "2024-01-01", "--to", "2024-12-31")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ops.from != "2024-01-01" || ops.to != "2024-12-31" {
		t.Fatalf("bounds = %v, %v", ops.from, ops.to)
	}
	for _, want := range []string{"analytics a-1", "Three donations.", `"totalCount": 3`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyticsCommand_DefaultPeriod(t *testing.T) {
	ops := &stubOps{}
	if _, err := run(t, ops, "analytics"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ops.from != nil || ops.to != nil {
		t.Fatalf("expected nil bounds, got %v, %v", ops.from, ops.to)
	}
}

func TestThankYouCommand(t *testing.T) {
	ops := &stubOps{}
	out, err := run(t, ops, "thank-you", "d-1")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ops.thankYouID != "d-1" || !strings.Contains(out, "[generated]") {
		t.Fatalf("id = %q, out = %q", ops.thankYouID, out)
	}

	if _, err := run(t, &stubOps{}, "thank-you"); err == nil {
		t.Fatal("expected argument error")
	}

	_, err = run(t, &stubOps{err: domain.ErrDonorRequired}, "thank-you", "d-2")
	if err == nil || !strings.Contains(err.Error(), "has no donor") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBackfillCommand(t *testing.T) {
	ops := &stubOps{}
	out, err := run(t, ops, "backfill", "--limit", "10", "--concurrency", "3")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ops.limit != 10 || ops.workers != 3 || !strings.Contains(out, "stored 2") {
		t.Fatalf("limit=%d workers=%d out=%q", ops.limit, ops.workers, out)
	}

	boom := errors.New("boom")
	if _, err := run(t, &stubOps{err: boom}, "backfill"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
