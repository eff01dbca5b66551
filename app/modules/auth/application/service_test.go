package authservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/infrastructure/jwt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestAuthService(j *FakeJWTProvider, cfg Config) Service {
	return NewService(j, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		config    Config
		password  string
		setupMock func(j *FakeJWTProvider)
		wantErr   error
		wantTrace []string
		verify    func(t *testing.T, resp *LoginResponse)
	}{
		{
			name:      "success",
			config:    Config{AdminPassword: "s3cret", SessionTTL: time.Hour},
			password:  "s3cret",
			wantTrace: []string{"GenerateToken"},
			setupMock: func(j *FakeJWTProvider) {
				j.GenerateTokenFunc = func(session *authdomain.Session, ttl time.Duration) (string, error) {
					if session.Role != authdomain.RoleAdmin || session.ID == "" {
						return "", errors.New("unexpected session")
					}
					if ttl != time.Hour {
						return "", errors.New("unexpected ttl")
					}
					return "signed", nil
				}
			},
			verify: func(t *testing.T, resp *LoginResponse) {
				assert.Equal(t, "signed", resp.Token)
				assert.Equal(t, authdomain.RoleAdmin, resp.Role)
				assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
			},
		},
		{
			name:     "wrong password",
			config:   Config{AdminPassword: "s3cret"},
			password: "s3cre",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "login disabled",
			config:   Config{},
			password: "",
			wantErr:  ErrLoginDisabled,
		},
		{
			name:     "signing failure",
			config:   Config{AdminPassword: "s3cret"},
			password: "s3cret",
			setupMock: func(j *FakeJWTProvider) {
				j.GenerateTokenFunc = func(*authdomain.Session, time.Duration) (string, error) {
					return "", errors.New("hsm offline")
				}
			},
			wantErr:   ErrGenerateToken,
			wantTrace: []string{"GenerateToken"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &FakeJWTProvider{}
			if tt.setupMock != nil {
				tt.setupMock(j)
			}
			svc := newTestAuthService(j, tt.config)

			resp, err := svc.Login(ctx, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				tt.verify(t, resp)
			}
			assert.Equal(t, tt.wantTrace, j.Trace())
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		token     string
		setupMock func(j *FakeJWTProvider)
		wantErr   error
	}{
		{name: "valid", token: "tok"},
		{name: "missing", token: "  ", wantErr: ErrMissingToken},
		{
			name:  "expired",
			token: "tok",
			setupMock: func(j *FakeJWTProvider) {
				j.ValidateTokenFunc = func(string) (*authdomain.Session, error) { return nil, authjwt.ErrExpiredToken }
			},
			wantErr: ErrExpiredToken,
		},
		{
			name:  "bad signature",
			token: "tok",
			setupMock: func(j *FakeJWTProvider) {
				j.ValidateTokenFunc = func(string) (*authdomain.Session, error) { return nil, authjwt.ErrInvalidSignature }
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &FakeJWTProvider{}
			if tt.setupMock != nil {
				tt.setupMock(j)
			}
			session, err := newTestAuthService(j, Config{AdminPassword: "x"}).Authenticate(ctx, tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, session.IsAdmin())
		})
	}
}

func TestService_LoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(authjwt.NewProvider("round-trip-secret-32-bytes-long!!", "pingpong-bot"),
		Config{AdminPassword: "pw"}, nil, noop.NewTracerProvider().Tracer("test"))

	resp, err := svc.Login(ctx, "pw")
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Subject)
	assert.True(t, session.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(DefaultSessionTTL), session.ExpiresAt, time.Minute)
}

func TestService_AuthenticateWithoutSecret(t *testing.T) {
	ctx := context.Background()
	svc := NewService(authjwt.NewProvider("", "pingpong-bot"),
		Config{}, nil, noop.NewTracerProvider().Tracer("test"))

	claims := jwt.MapClaims{
		"iss":  "pingpong-bot",
		"sub":  "admin",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, forged)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, session)
}
