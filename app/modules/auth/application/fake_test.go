package authservice

import (
	"time"

	authdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/domain"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(session *authdomain.Session, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Session, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(session *authdomain.Session, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(session, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Session, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Session{
		ID:        "test-session",
		Subject:   "admin",
		Role:      authdomain.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}
