package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"donationsrv/internal/domain"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func fixedPublisher(ch *fakeChannel) *AMQPPublisher {
	p := newPublisher(ch, "donations", zerolog.Nop())
	p.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestAMQPPublisher_ThankYouComposed(t *testing.T) {
	ch := &fakeChannel{}
	p := fixedPublisher(ch)

	donor := "donor-7"
	donation := domain.Donation{ID: "d-1", DonorID: &donor}
	if err := p.ThankYouComposed(context.Background(), donation, "Dear Ada,", domain.NarrativeFallback); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(ch.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(ch.sent))
	}
	sent := ch.sent[0]
	if sent.exchange != "donations" || sent.key != KeyThankYouComposed {
		t.Fatalf("unexpected routing: %+v", sent)
	}
	if sent.msg.ContentType != "application/json" || sent.msg.DeliveryMode != amqp091.Persistent {
		t.Fatalf("unexpected publishing: %+v", sent.msg)
	}

	var body map[string]any
	if err := json.Unmarshal(sent.msg.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["donation_id"] != "d-1" || body["donor_id"] != "donor-7" || body["source"] != "fallback" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["composed_at"] != "2024-06-01T12:00:00Z" {
		t.Fatalf("composed_at = %v", body["composed_at"])
	}
}

func TestAMQPPublisher_AnalyticsComposed(t *testing.T) {
	ch := &fakeChannel{}
	p := fixedPublisher(ch)

	rec := domain.Analytics{ID: "a-1", PeriodFrom: "2024-01-01", PeriodTo: "2024-03-31", NarrativeSource: domain.NarrativeGenerated}
	if err := p.AnalyticsComposed(context.Background(), rec); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if ch.sent[0].key != KeyAnalyticsComposed {
		t.Fatalf("key = %q", ch.sent[0].key)
	}
	var msg AnalyticsComposed
	if err := json.Unmarshal(ch.sent[0].msg.Body, &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.AnalyticsID != "a-1" || msg.PeriodTo != "2024-03-31" || msg.Source != domain.NarrativeGenerated {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := fixedPublisher(&fakeChannel{err: boom})
	err := p.AnalyticsComposed(context.Background(), domain.Analytics{ID: "a-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestAMQPPublisher_CloseWithoutConnection(t *testing.T) {
	ch := &fakeChannel{}
	p := fixedPublisher(ch)
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ch.closed {
		t.Fatal("channel not closed")
	}
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.ThankYouComposed(context.Background(), domain.Donation{}, "", domain.NarrativeEmpty); err != nil {
		t.Fatal(err)
	}
	if err := p.AnalyticsComposed(context.Background(), domain.Analytics{}); err != nil {
		t.Fatal(err)
	}
}
