package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// Login checks the admin password and opens an admin session.
	Login(ctx context.Context, password string) (*LoginResponse, error)

	// Authenticate validates a session token and returns the session.
	Authenticate(ctx context.Context, token string) (*authdomain.Session, error)
}

// LoginResponse carries a freshly issued session token.
type LoginResponse struct {
	Token     string          `json:"token"`
	Role      authdomain.Role `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}
