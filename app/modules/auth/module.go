package auth

import (
	"context"
	"log/slog"
	"sync"

	authservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/pingpong-bot/config"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

const tokenIssuer = "pingpong-bot"

// Module represents the admin auth module.
type Module struct {
	config     *config.Config
	service    authservice.Service
	handlers   *authhandlers.AuthHandlers
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates a new auth module and registers its routes on httpRouter.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	tracer trace.Tracer,
	httpRouter chi.Router,
) (*Module, error) {
	logger.InfoContext(ctx, "Initializing auth module")

	if cfg.Admin.Password == "" {
		logger.WarnContext(ctx, "ADMIN_PASSWORD is empty, admin login is disabled")
	}
	if cfg.Admin.JWTSecret == "" {
		logger.WarnContext(ctx, "JWT_SECRET is empty, admin sessions are rejected")
	}

	jwtProvider := authjwt.NewProvider(cfg.Admin.JWTSecret, tokenIssuer)

	service := authservice.NewService(
		jwtProvider,
		authservice.Config{
			AdminPassword: cfg.Admin.Password,
			SessionTTL:    cfg.Admin.SessionTTL,
		},
		logger,
		tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, logger, tracer)

	if httpRouter != nil {
		limiter := authhandlers.NewIPRateLimiter(5, 10)
		httpRouter.Route("/api/auth", func(r chi.Router) {
			r.Use(authhandlers.RateLimitMiddleware(limiter))

			r.Post("/login", handlers.HandleLogin)

			r.Group(func(r chi.Router) {
				r.Use(authhandlers.RequireAdmin(service))
				r.Get("/session", handlers.HandleSession)
			})
		})
	}

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Run blocks until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting auth module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Auth module goroutine stopped")
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.logger.Info("Stopping auth module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
