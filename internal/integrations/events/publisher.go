// Package events publishes booking lifecycle events to Kafka.
// Delivery is best effort: callers log a failed publish and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher пишет события в один топик, ключ сообщения ID бронирования
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewKafkaPublisher создаёт синхронный writer с ожиданием подтверждения от всех реплик
func NewKafkaPublisher(brokers []string, topic string, timeout time.Duration) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: timeout,
	}

	return newPublisher(writer, timeout), nil
}

func newPublisher(writer messageWriter, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		writer:  writer,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (p *KafkaPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, newBookingEvent(TypeBookingCreated, booking, p.now()))
}

func (p *KafkaPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking, cancelledBy string) error {
	event := newBookingEvent(TypeBookingCancelled, booking, p.now())
	event.CancelledBy = cancelledBy
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, event BookingEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(event.BookingID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrPublish, event.Type, event.BookingID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, *domain.Booking) error { return nil }

func (NopPublisher) PublishBookingCancelled(context.Context, *domain.Booking, string) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
