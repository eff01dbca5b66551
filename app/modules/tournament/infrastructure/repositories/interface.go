package tournamentdb

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	"github.com/uptrace/bun"
)

// Repository is the match ledger: persistence for players and bracket matches.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - other errors: infrastructure failures
type Repository interface {
	// Players
	AddPlayers(ctx context.Context, db bun.IDB, names []string) (int, error)
	ListPlayers(ctx context.Context, db bun.IDB) ([]*Player, error)
	GetPlayer(ctx context.Context, db bun.IDB, id tournamentdomain.PlayerID) (*Player, error)

	// Matches
	ListMatches(ctx context.Context, db bun.IDB) ([]*Match, error)
	ListPendingMatches(ctx context.Context, db bun.IDB) ([]*Match, error)
	GetMatch(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID) (*Match, error)
	InsertMatches(ctx context.Context, db bun.IDB, seeds []tournamentdomain.MatchSeed) error
	UpdateMatchParticipants(ctx context.Context, db bun.IDB, update tournamentdomain.ParticipantUpdate) error

	// Results
	SetMatchResult(ctx context.Context, db bun.IDB, result tournamentdomain.MatchResult) error
	CloseBye(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID, winner tournamentdomain.PlayerID) error

	// ResetTournament removes every match. Players are kept with zeroed stats when
	// keepPlayers is true and deleted otherwise.
	ResetTournament(ctx context.Context, db bun.IDB, keepPlayers bool) error
}
