package tournamentevents

import (
	"time"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
)

const (
	// BracketGeneratedV1 is published after a new bracket has been built and advanced.
	BracketGeneratedV1 = "tournament.bracket.generated.v1"
	// ResultRecordedV1 is published after a score has been accepted.
	ResultRecordedV1 = "tournament.result.recorded.v1"
	// BackfillDrawnV1 is published when losers were drawn into round two.
	BackfillDrawnV1 = "tournament.backfill.drawn.v1"
	// TournamentResetV1 is published after matches (and possibly players) were cleared.
	TournamentResetV1 = "tournament.reset.v1"
)

// Topics lists every topic the module publishes.
var Topics = []string{BracketGeneratedV1, ResultRecordedV1, BackfillDrawnV1, TournamentResetV1}

// BracketGeneratedPayload describes a freshly generated bracket.
type BracketGeneratedPayload struct {
	Players     int       `json:"players"`
	Matches     int       `json:"matches"`
	Rounds      int       `json:"rounds"`
	Byes        int       `json:"byes"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ResultRecordedPayload describes an accepted score and its knock-on placements.
type ResultRecordedPayload struct {
	MatchID    tournamentdomain.MatchID  `json:"match_id"`
	Round      int                       `json:"round"`
	Slot       int                       `json:"slot"`
	WinnerID   tournamentdomain.PlayerID `json:"winner_id"`
	Score1     int                       `json:"player1_score"`
	Score2     int                       `json:"player2_score"`
	Advanced   int                       `json:"advanced"`
	Backfilled int                       `json:"backfilled"`
}

// BackfillDrawnPayload describes a backfill draw.
type BackfillDrawnPayload struct {
	Filled int    `json:"filled"`
	Seed   *int64 `json:"seed,omitempty"`
}

// TournamentResetPayload describes a reset.
type TournamentResetPayload struct {
	KeepPlayers bool `json:"keep_players"`
}
