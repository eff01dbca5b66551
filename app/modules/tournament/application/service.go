package tournamentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/application/parsers"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/events"
	tournamentmetrics "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/metrics"
	tournamentdb "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "TournamentService"

// Config tunes bracket behaviour.
type Config struct {
	// Policy controls whether propagation may rewrite completed matches.
	Policy tournamentdomain.PropagationPolicy

	// RandomSource builds the shuffler for a backfill draw. A nil seed asks for a
	// non-deterministic source. Defaults to the math/rand/v2 PCG sources.
	RandomSource func(seed *int64) tournamentdomain.Shuffler

	// Palette is used for rendered charts.
	Palette ChartPalette
}

// TournamentService implements the Service interface.
type TournamentService struct {
	repo      tournamentdb.Repository
	logger    *slog.Logger
	metrics   tournamentmetrics.TournamentMetrics
	tracer    trace.Tracer
	db        *bun.DB
	publisher tournamentevents.Publisher
	parsers   parsers.ParserFactory
	config    Config
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	logger *slog.Logger,
	metrics tournamentmetrics.TournamentMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher tournamentevents.Publisher,
	cfg Config,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RandomSource == nil {
		cfg.RandomSource = defaultRandomSource
	}
	if cfg.Palette == (ChartPalette{}) {
		cfg.Palette = DefaultPalette
	}
	return &TournamentService{
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		publisher: publisher,
		parsers:   parsers.NewFactory(),
		config:    cfg,
	}
}

func defaultRandomSource(seed *int64) tournamentdomain.Shuffler {
	if seed != nil {
		return tournamentdomain.NewSeededShuffler(*seed)
	}
	return tournamentdomain.NewShuffler()
}

// publish emits an event after the owning transaction committed. Failures are logged
// and never fail the operation.
func (s *TournamentService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish tournament event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// mapRepoError turns repository sentinels into domain failures.
func mapRepoError(err error, what string) error {
	if errors.Is(err, tournamentdb.ErrNotFound) {
		return fmt.Errorf("%w: %s", tournamentdomain.ErrNotFound, what)
	}
	return err
}

// isDomainError reports whether err belongs to the domain taxonomy.
func isDomainError(err error) bool {
	return errors.Is(err, tournamentdomain.ErrInvalidInput) ||
		errors.Is(err, tournamentdomain.ErrNotFound) ||
		errors.Is(err, tournamentdomain.ErrAlreadyClosed) ||
		errors.Is(err, tournamentdomain.ErrIncompleteMatch) ||
		errors.Is(err, tournamentdomain.ErrTiedScore)
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any] func(ctx context.Context) (results.OperationResult[S, error], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S],
) (result results.OperationResult[S, error], err error) {

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, error]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(*result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any](
	s *TournamentService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (results.OperationResult[S, error], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, error]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// run wraps fn in a transaction and telemetry and unwraps the result.
func run[S any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	identifier string,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (S, error) {
	var zero S

	result, err := withTelemetry(s, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return runInTx(s, ctx, fn)
	})
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, nil
	}
	return *result.Success, nil
}
