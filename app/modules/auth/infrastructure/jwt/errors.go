package authjwt

import "errors"

var (
	// ErrInvalidToken is returned when the session token is malformed, carries an
	// unknown role, or was issued by someone else.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken is returned when the session token has expired.
	ErrExpiredToken = errors.New("session token has expired")

	// ErrInvalidSignature is returned when the signature or signing method does not match.
	ErrInvalidSignature = errors.New("invalid session token signature")

	// ErrMissingSecret is returned by a provider built without a signing secret. Such a
	// provider neither issues nor accepts tokens.
	ErrMissingSecret = errors.New("session signing secret is not configured")
)
