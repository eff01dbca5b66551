package tournamentevents

import (
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tournamentmetrics "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
)

// AuditHandler logs every tournament event and counts it.
type AuditHandler struct {
	logger  *slog.Logger
	metrics tournamentmetrics.TournamentMetrics
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(logger *slog.Logger, metrics tournamentmetrics.TournamentMetrics) *AuditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = tournamentmetrics.NewNoop()
	}
	return &AuditHandler{logger: logger, metrics: metrics}
}

// Handle consumes one event message. It never fails, so a bad payload is logged and acked.
func (h *AuditHandler) Handle(msg *message.Message) error {
	ctx := msg.Context()
	topic := msg.Metadata.Get("topic")

	h.metrics.RecordEvent(ctx, topic)
	h.logger.InfoContext(ctx, "Tournament event",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.String(CorrelationIDKey, msg.Metadata.Get(CorrelationIDKey)),
		attr.String("payload", string(msg.Payload)),
	)
	return nil
}
