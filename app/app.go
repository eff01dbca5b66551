package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/Black-And-White-Club/pingpong-bot/app/modules/auth"
	"github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament"
	tournamentmetrics "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/metrics"
	"github.com/Black-And-White-Club/pingpong-bot/config"
	"github.com/Black-And-White-Club/pingpong-bot/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
)

const tracerName = "github.com/Black-And-White-Club/pingpong-bot"

// Modules groups the application modules.
type Modules struct {
	AuthModule       *auth.Module
	TournamentModule *tournament.Module
}

// App wires configuration, storage, modules and the HTTP router.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bundb.DBService
	Router   chi.Router
	Modules  Modules
	Registry *prometheus.Registry

	wg sync.WaitGroup
}

// NewApp loads the configuration and builds every module.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := NewLogger(cfg)
	slog.SetDefault(logger)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     dbService,
	}

	var metrics tournamentmetrics.TournamentMetrics = tournamentmetrics.NewNoop()
	if cfg.Observability.MetricsEnabled {
		app.Registry = prometheus.NewRegistry()
		app.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = tournamentmetrics.NewPrometheus(app.Registry)
	}

	app.Router = newRouter(app.Registry, cfg.HTTP.AllowedOrigins)
	tracer := otel.Tracer(tracerName)

	authModule, err := auth.NewModule(ctx, cfg, logger, tracer, app.Router)
	if err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("failed to initialize auth module: %w", err)
	}

	tournamentModule, err := tournament.NewTournamentModule(
		ctx,
		cfg,
		logger,
		metrics,
		tracer,
		dbService.GetDB(),
		app.Router,
		requireAdmin(authModule.GetService()),
	)
	if err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	app.Modules = Modules{
		AuthModule:       authModule,
		TournamentModule: tournamentModule,
	}
	return app, nil
}

// NewLogger builds the root logger: JSON outside development, text inside it.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)).With(
		"service", "pingpong-bot",
		"environment", cfg.Observability.Environment,
	)
}

// Close stops every module and closes the database.
func (app *App) Close() {
	if app.Modules.TournamentModule != nil {
		if err := app.Modules.TournamentModule.Close(); err != nil {
			app.Logger.Error("Error closing tournament module", "error", err)
		}
	}
	if app.Modules.AuthModule != nil {
		if err := app.Modules.AuthModule.Close(); err != nil {
			app.Logger.Error("Error closing auth module", "error", err)
		}
	}

	app.wg.Wait()

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Error closing database connection", "error", err)
		}
	}
}
