package authhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc authservice.Service) *AuthHandlers {
	return NewAuthHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
}

func TestAuthHandlers_HandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(s *FakeService)
		wantStatus int
		wantToken  string
	}{
		{
			name: "success",
			body: `{"password":"pw"}`,
			setup: func(s *FakeService) {
				s.LoginFunc = func(_ context.Context, password string) (*authservice.LoginResponse, error) {
					if password != "pw" {
						return nil, authservice.ErrInvalidCredentials
					}
					return &authservice.LoginResponse{Token: "tok", Role: authdomain.RoleAdmin}, nil
				}
			},
			wantStatus: http.StatusOK,
			wantToken:  "tok",
		},
		{
			name: "wrong password",
			body: `{"password":"nope"}`,
			setup: func(s *FakeService) {
				s.LoginFunc = func(context.Context, string) (*authservice.LoginResponse, error) {
					return nil, authservice.ErrInvalidCredentials
				}
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "disabled",
			body: `{"password":""}`,
			setup: func(s *FakeService) {
				s.LoginFunc = func(context.Context, string) (*authservice.LoginResponse, error) {
					return nil, authservice.ErrLoginDisabled
				}
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "signing failure",
			body: `{"password":"pw"}`,
			setup: func(s *FakeService) {
				s.LoginFunc = func(context.Context, string) (*authservice.LoginResponse, error) {
					return nil, errors.New("boom")
				}
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "malformed body",
			body:       `{"password":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := newTestHandlers(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantToken != "" {
				var resp authservice.LoginResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.wantToken, resp.Token)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	h := newTestHandlers(&FakeService{})
	protected := RequireAdmin(&FakeService{})(http.HandlerFunc(h.HandleSession))

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
	}{
		{name: "no token", prepare: func(*http.Request) {}, wantStatus: http.StatusUnauthorized},
		{
			name:       "bearer token",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer good-token") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad bearer token",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer forged") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer scheme",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Basic good-token") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "session cookie",
			prepare:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"}) },
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var session authdomain.Session
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
				assert.Equal(t, authdomain.RoleAdmin, session.Role)
			} else {
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequireAdmin_RejectsViewerSession(t *testing.T) {
	svc := &FakeService{
		AuthenticateFunc: func(context.Context, string) (*authdomain.Session, error) {
			return &authdomain.Session{Role: authdomain.RoleViewer}, nil
		},
	}
	called := false
	handler := RequireAdmin(svc)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodPost, "/api/tournament/reset", nil)
	req.Header.Set("Authorization", "Bearer any")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestHandleSession_WithoutMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandlers(&FakeService{}).HandleSession(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
