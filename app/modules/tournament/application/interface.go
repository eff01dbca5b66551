package tournamentservice

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
)

// Service defines the tournament operations exposed to handlers and the CLI.
type Service interface {
	// Players
	AddPlayers(ctx context.Context, names []string) (int, error)
	ImportPlayers(ctx context.Context, filename string, data []byte) (int, error)
	ListPlayers(ctx context.Context) ([]tournamentdomain.Player, error)
	GetPlayer(ctx context.Context, id tournamentdomain.PlayerID) (*tournamentdomain.Player, error)
	Standings(ctx context.Context) ([]tournamentdomain.Standing, error)
	StandingsChart(ctx context.Context) ([]byte, error)

	// Bracket primitives. Each runs in its own transaction.
	BuildBracket(ctx context.Context) (*BracketSummary, error)
	ResolveByes(ctx context.Context) (int, error)
	AdvanceWinners(ctx context.Context) (int, error)
	Backfill(ctx context.Context, seed *int64) (int, error)
	RecordResult(ctx context.Context, id tournamentdomain.MatchID, score1, score2 int) (*tournamentdomain.Match, error)
	ResetTournament(ctx context.Context, keepPlayers bool) error

	// Reads
	ListMatches(ctx context.Context) ([]tournamentdomain.Match, error)
	ListPendingMatches(ctx context.Context) ([]tournamentdomain.Match, error)
	GetMatch(ctx context.Context, id tournamentdomain.MatchID) (*tournamentdomain.Match, error)
	ExportBracketDOT(ctx context.Context) (string, error)

	// Workflows sequencing the primitives the way an operator uses them.
	GenerateBracket(ctx context.Context) (*BracketSummary, error)
	SubmitResult(ctx context.Context, id tournamentdomain.MatchID, score1, score2 int) (*ResultSummary, error)
}

// BracketSummary describes a built bracket.
type BracketSummary struct {
	Players  int `json:"players"`
	Matches  int `json:"matches"`
	Rounds   int `json:"rounds"`
	Byes     int `json:"byes"`
	Advanced int `json:"advanced"`
}

// ResultSummary describes a submitted result and the placements it triggered.
type ResultSummary struct {
	Match      tournamentdomain.Match `json:"match"`
	Advanced   int                    `json:"advanced"`
	Backfilled int                    `json:"backfilled"`
}
