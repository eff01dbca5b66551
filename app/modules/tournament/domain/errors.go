package tournamentdomain

import "errors"

var (
	// ErrInvalidInput is returned for malformed requests, e.g. fewer than two players at build time.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a match or player id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyClosed is returned when a result is submitted for a DONE match.
	ErrAlreadyClosed = errors.New("match already closed")

	// ErrIncompleteMatch is returned when a result is submitted while a side is unassigned.
	ErrIncompleteMatch = errors.New("match has an unassigned participant")

	// ErrTiedScore is returned when both scores are equal. Ping-pong has no draws.
	ErrTiedScore = errors.New("tied score")
)
