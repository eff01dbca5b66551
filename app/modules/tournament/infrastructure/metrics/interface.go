package tournamentmetrics

import (
	"context"
	"time"
)

// TournamentMetrics records service-level measurements for the tournament module.
type TournamentMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)

	// RecordPlacements counts participant assignments by source (bye, propagation, backfill).
	RecordPlacements(ctx context.Context, source string, count int)

	// RecordEvent counts domain events seen by the audit handler.
	RecordEvent(ctx context.Context, topic string)
}
