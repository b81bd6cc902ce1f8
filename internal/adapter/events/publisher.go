// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"donationsrv/internal/domain"
)

const publishTimeout = 5 * time.Second

// Publisher announces composed thank-you messages and analytics snapshots.
type Publisher interface {
	ThankYouComposed(ctx context.Context, donation domain.Donation, message string, source domain.NarrativeSource) error
	AnalyticsComposed(ctx context.Context, rec domain.Analytics) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) ThankYouComposed(context.Context, domain.Donation, string, domain.NarrativeSource) error {
	return nil
}
func (Noop) AnalyticsComposed(context.Context, domain.Analytics) error { return nil }
func (Noop) Close() error                                              { return nil }

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a durable direct exchange.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	logger   zerolog.Logger
	now      func() time.Time
}

// Dial connects to url and declares exchange.
func Dial(url, exchange string, logger zerolog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	p := newPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{channel: ch, exchange: exchange, logger: logger, now: time.Now}
}

func (p *AMQPPublisher) ThankYouComposed(ctx context.Context, donation domain.Donation, message string, source domain.NarrativeSource) error {
	body, err := NewThankYouComposed(donation, message, source, p.now()).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return p.publish(ctx, KeyThankYouComposed, body)
}

func (p *AMQPPublisher) AnalyticsComposed(ctx context.Context, rec domain.Analytics) error {
	body, err := NewAnalyticsComposed(rec, p.now()).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return p.publish(ctx, KeyAnalyticsComposed, body)
}

func (p *AMQPPublisher) publish(ctx context.Context, key string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := p.channel.PublishWithContext(ctx, p.exchange, key, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	p.logger.Debug().Str("exchange", p.exchange).Str("key", key).Msg("event published")
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var (
	_ Publisher = Noop{}
	_ Publisher = (*AMQPPublisher)(nil)
)
