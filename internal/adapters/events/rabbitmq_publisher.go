package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingKeyTripPlanned = "trip.planned"

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// TripPlannedEvent is the JSON body published for every saved trip.
type TripPlannedEvent struct {
	Event              string    `json:"event"`
	TripID             string    `json:"trip_id"`
	CurrentLocation    string    `json:"current_location"`
	PickupLocation     string    `json:"pickup_location"`
	DropoffLocation    string    `json:"dropoff_location"`
	TotalDistanceMiles float64   `json:"total_distance_miles"`
	EstimatedHours     float64   `json:"estimated_duration_hours"`
	LogDays            int       `json:"log_days"`
	ViolationCount     int       `json:"violation_count"`
	Compliant          bool      `json:"compliant"`
	OccurredAt         time.Time `json:"occurred_at"`
}

func NewTripPlannedEvent(t *domain.Trip, now time.Time) TripPlannedEvent {
	ev := TripPlannedEvent{
		Event:              RoutingKeyTripPlanned,
		TripID:             t.ID,
		CurrentLocation:    t.CurrentLocation,
		PickupLocation:     t.PickupLocation,
		DropoffLocation:    t.DropoffLocation,
		TotalDistanceMiles: t.TotalDistanceMiles,
		EstimatedHours:     t.EstimatedDurationHours,
		LogDays:            len(t.Logs),
		Compliant:          true,
		OccurredAt:         now.UTC(),
	}
	for _, l := range t.Logs {
		ev.ViolationCount += l.Compliance.ViolationCount
		if !l.Compliance.IsCompliant {
			ev.Compliant = false
		}
	}
	return ev
}

// RabbitMQPublisher publishes trip events to a durable topic exchange.
// Publishes are serialized; an AMQP channel is not safe for concurrent use.
type RabbitMQPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// DialRabbitMQ connects to url and declares the exchange.
func DialRabbitMQ(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Dial:      amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare exchange %q: %w", exchange, err)
	}

	p := newPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) *RabbitMQPublisher {
	return &RabbitMQPublisher{ch: ch, exchange: exchange, now: time.Now}
}

func (p *RabbitMQPublisher) PublishTripPlanned(ctx context.Context, t *domain.Trip) (err error) {
	defer obs.Time(ctx, "events.PublishTripPlanned")(&err)

	if t == nil {
		return errors.New("publish trip planned: trip is nil")
	}

	body, err := json.Marshal(NewTripPlannedEvent(t, p.now()))
	if err != nil {
		return fmt.Errorf("publish trip planned: encode: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(pubCtx, p.exchange, RoutingKeyTripPlanned, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    t.ID,
		Timestamp:    p.now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish trip planned id=%s: %w", t.ID, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTripPlanned(context.Context, *domain.Trip) error { return nil }
