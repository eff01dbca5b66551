package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tournamentservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/events"
	tournamenthandlers "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/handlers"
	tournamentmetrics "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/metrics"
	tournamentdb "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/pingpong-bot/config"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the tournament module.
type Module struct {
	TournamentService tournamentservice.Service
	config            *config.Config
	pubsub            *gochannel.GoChannel
	auditRouter       *tournamentevents.AuditRouter
	cancelFunc        context.CancelFunc
	logger            *slog.Logger
}

// NewTournamentModule creates a new instance of the tournament module. When httpRouter
// is set the REST API is mounted on it with requireAdmin guarding the mutating routes.
func NewTournamentModule(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	metrics tournamentmetrics.TournamentMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) (*Module, error) {
	logger.InfoContext(ctx, "tournament.NewTournamentModule called")

	pubsub := tournamentevents.NewPubSub(logger)
	auditRouter, err := tournamentevents.NewAuditRouter(logger, pubsub, tournamentevents.NewAuditHandler(logger, metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament audit router: %w", err)
	}

	policy := tournamentdomain.PropagationPolicy{OverwriteCompleted: cfg.Tournament.OverwriteCompleted}
	service := tournamentservice.NewTournamentService(
		tournamentdb.NewRepository(db),
		logger,
		metrics,
		tracer,
		db,
		tournamentevents.NewEventPublisher(pubsub, logger),
		tournamentservice.Config{Policy: policy},
	)

	if httpRouter != nil {
		handlers := tournamenthandlers.NewTournamentHandlers(service, logger, tracer)
		handlers.RegisterRoutes(httpRouter, requireAdmin)
	}

	return &Module{
		TournamentService: service,
		config:            cfg,
		pubsub:            pubsub,
		auditRouter:       auditRouter,
		logger:            logger,
	}, nil
}

// Run starts the audit router and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	go func() {
		if err := m.auditRouter.Run(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Tournament audit router stopped", attr.Error(err))
		}
	}()

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Tournament module goroutine stopped")
}

// Close stops the audit router and closes the in-process pub/sub.
func (m *Module) Close() error {
	m.logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	var firstErr error
	if err := m.auditRouter.Close(); err != nil {
		m.logger.Error("Error stopping tournament audit router", attr.Error(err))
		firstErr = fmt.Errorf("error stopping audit router: %w", err)
	}
	if err := m.pubsub.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("error closing pubsub: %w", err)
	}

	m.logger.Info("Tournament module stopped")
	return firstErr
}
