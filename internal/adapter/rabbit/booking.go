package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
	"github.com/roamhub/booking-ref-system/pkg/metrics"
	"github.com/roamhub/booking-ref-system/pkg/rabbit"
	"github.com/roamhub/booking-ref-system/pkg/uuid"
)

const (
	BookingExchange = "booking_topic"
)

// BookingBroker publishes allocation events for downstream consumers: the
// notification services embed the reference into the emails and WhatsApp
// messages they send. Publishing is best-effort and sits off the allocation
// hot path.
type BookingBroker struct {
	client   *rabbit.RabbitMQ
	Exchange string

	l logger.Logger
}

func NewBookingBroker(client *rabbit.RabbitMQ, log logger.Logger) *BookingBroker {
	return &BookingBroker{
		client:   client,
		Exchange: BookingExchange,

		l: log,
	}
}

// Publish implements the ledger writer's fan-out hook. Errors are logged and
// counted; an undeliverable event never affects the recorded allocation.
func (b *BookingBroker) Publish(ctx context.Context, rec models.AllocationRecord) {
	if err := b.PublishAllocation(ctx, rec); err != nil {
		b.l.Error(wrap.ErrorCtx(ctx, err), "failed to publish allocation event", err)
	}
}

// PublishAllocation publishes the record to the booking exchange with the
// routing key 'booking.allocated.{service_type}'.
func (b *BookingBroker) PublishAllocation(ctx context.Context, rec models.AllocationRecord) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_allocation")

	if err := b.client.EnsureConnection(ctx); err != nil {
		metrics.RecordRabbitMQPublish(b.Exchange, err)
		return wrap.Error(ctx, err)
	}

	msg := models.AllocationMessage{
		BookingID:      rec.BookingID,
		ServiceType:    rec.ServiceType,
		DatePart:       rec.DatePart,
		SequenceNumber: rec.SequenceNumber,
		Degraded:       rec.Degraded,
		IssuedAt:       rec.IssuedAt,
		CorrelationID:  uuid.MustNew().String(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	// routing key, e.g. "booking.allocated.HTL"
	key := fmt.Sprintf("booking.allocated.%s", rec.ServiceType)

	err = retry(5, time.Second, func() error {
		if err := b.client.Channel.PublishWithContext(
			ctx,
			b.Exchange, // exchange
			key,        // routing key
			false,      // mandatory
			false,      // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: msg.CorrelationID,
				Body:          body,
				Timestamp:     time.Now(),
			},
		); err != nil {
			return fmt.Errorf("failed to publish with context: %w", err)
		}

		return nil
	})

	metrics.RecordRabbitMQPublish(b.Exchange, err)
	if err != nil {
		return wrap.Error(ctx, err)
	}

	return nil
}
