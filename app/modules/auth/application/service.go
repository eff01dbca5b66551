package authservice

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	authdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/infrastructure/jwt"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the configuration for the auth service.
type Config struct {
	// AdminPassword unlocks admin sessions. Empty disables login.
	AdminPassword string
	SessionTTL    time.Duration
}

const (
	DefaultSessionTTL = 12 * time.Hour
	adminSubject      = "admin"
)

// service implements the Service interface.
type service struct {
	jwtProvider authjwt.Provider
	config      Config
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if config.SessionTTL <= 0 {
		config.SessionTTL = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		jwtProvider: jwtProvider,
		config:      config,
		logger:      logger,
		tracer:      tracer,
	}
}

// Login checks the admin password and issues a session token.
func (s *service) Login(ctx context.Context, password string) (*LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if s.config.AdminPassword == "" {
		s.logger.WarnContext(ctx, "Login attempted while admin password is unset")
		return nil, ErrLoginDisabled
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) != 1 {
		s.logger.WarnContext(ctx, "Admin login rejected", attr.ExtractCorrelationID(ctx))
		return nil, ErrInvalidCredentials
	}

	session := &authdomain.Session{
		ID:      uuid.New().String(),
		Subject: adminSubject,
		Role:    authdomain.RoleAdmin,
	}
	token, err := s.jwtProvider.GenerateToken(session, s.config.SessionTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sign session token", attr.Error(err))
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrGenerateToken, err)
	}

	s.logger.InfoContext(ctx, "Admin session opened",
		attr.ExtractCorrelationID(ctx),
		attr.String("session_id", session.ID),
	)

	return &LoginResponse{
		Token:     token,
		Role:      session.Role,
		ExpiresAt: time.Now().Add(s.config.SessionTTL),
	}, nil
}

// Authenticate validates a session token.
func (s *service) Authenticate(ctx context.Context, token string) (*authdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	session, err := s.jwtProvider.ValidateToken(token)
	if err != nil {
		s.logger.DebugContext(ctx, "Session token rejected", attr.Error(err))
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	return session, nil
}
