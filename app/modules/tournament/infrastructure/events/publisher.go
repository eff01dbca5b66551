package tournamentevents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// CorrelationIDKey is the message metadata key carrying the originating request id.
const CorrelationIDKey = "correlation_id"

// Publisher emits tournament domain events.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// EventPublisher publishes JSON payloads through a Watermill publisher.
type EventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(publisher message.Publisher, logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{publisher: publisher, logger: logger}
}

// Publish marshals payload and sends it on topic.
func (p *EventPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	msg.SetContext(ctx)

	correlationID := middleware.GetReqID(ctx)
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	msg.Metadata.Set(CorrelationIDKey, correlationID)
	msg.Metadata.Set("topic", topic)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "Published tournament event",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.String(CorrelationIDKey, correlationID),
	)
	return nil
}
