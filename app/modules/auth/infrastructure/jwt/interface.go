package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/domain"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed JWT token for the session.
	GenerateToken(session *authdomain.Session, ttl time.Duration) (string, error)

	// ValidateToken validates a JWT token and returns the session if valid.
	ValidateToken(tokenString string) (*authdomain.Session, error)
}
