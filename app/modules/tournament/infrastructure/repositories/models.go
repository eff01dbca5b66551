package tournamentdb

import (
	"time"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	"github.com/uptrace/bun"
)

// Player is a registered participant and their running totals.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            tournamentdomain.PlayerID `bun:"id,pk,autoincrement" json:"id"`
	Name          string                    `bun:"name,unique,notnull" json:"name"`
	TotalPoints   int                       `bun:"total_points,notnull,default:0" json:"total_points"`
	MatchesWon    int                       `bun:"matches_won,notnull,default:0" json:"matches_won"`
	MatchesPlayed int                       `bun:"matches_played,notnull,default:0" json:"matches_played"`
	CreatedAt     time.Time                 `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Match is one bracket node keyed by (round, slot).
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`
	ID            tournamentdomain.MatchID     `bun:"id,pk,autoincrement" json:"id"`
	Round         int                          `bun:"round,notnull" json:"round"`
	Slot          int                          `bun:"slot,notnull" json:"slot"`
	Player1ID     *tournamentdomain.PlayerID   `bun:"player1_id" json:"player1_id"`
	Player2ID     *tournamentdomain.PlayerID   `bun:"player2_id" json:"player2_id"`
	Player1Score  *int                         `bun:"player1_score" json:"player1_score"`
	Player2Score  *int                         `bun:"player2_score" json:"player2_score"`
	WinnerID      *tournamentdomain.PlayerID   `bun:"winner_id" json:"winner_id"`
	Status        tournamentdomain.MatchStatus `bun:"status,notnull,default:'PENDING'" json:"status"`
	UpdatedAt     time.Time                    `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// ToDomain converts the row into the domain representation.
func (p *Player) ToDomain() tournamentdomain.Player {
	return tournamentdomain.Player{
		ID:            p.ID,
		Name:          p.Name,
		TotalPoints:   p.TotalPoints,
		MatchesWon:    p.MatchesWon,
		MatchesPlayed: p.MatchesPlayed,
	}
}

// ToDomain converts the row into the domain representation.
func (m *Match) ToDomain() tournamentdomain.Match {
	return tournamentdomain.Match{
		ID:       m.ID,
		Round:    m.Round,
		Slot:     m.Slot,
		Player1:  m.Player1ID,
		Player2:  m.Player2ID,
		Score1:   m.Player1Score,
		Score2:   m.Player2Score,
		WinnerID: m.WinnerID,
		Status:   m.Status,
	}
}
