package authhandlers

import (
	"context"
	"time"

	authservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	LoginFunc        func(ctx context.Context, password string) (*authservice.LoginResponse, error)
	AuthenticateFunc func(ctx context.Context, token string) (*authdomain.Session, error)
}

func (f *FakeService) Login(ctx context.Context, password string) (*authservice.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, password)
	}
	return &authservice.LoginResponse{Token: "fake-token", Role: authdomain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *FakeService) Authenticate(ctx context.Context, token string) (*authdomain.Session, error) {
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, token)
	}
	if token != "good-token" {
		return nil, authservice.ErrInvalidToken
	}
	return &authdomain.Session{ID: "s1", Subject: "admin", Role: authdomain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}, nil
}
