package tournamentdb

import "errors"

// Sentinel errors for the tournament repository layer. The service maps them to
// domain errors.
var (
	// ErrNotFound indicates the requested player or match does not exist.
	ErrNotFound = errors.New("tournament record not found")

	// ErrNoRowsAffected indicates an UPDATE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
