package tournamentdomain

// PlayerID identifies a registered player.
type PlayerID int64

// MatchID identifies a match row.
type MatchID int64

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusPending MatchStatus = "PENDING"
	StatusDone    MatchStatus = "DONE"
)

// Player is a registered tournament participant and their running totals.
type Player struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	TotalPoints   int      `json:"total_points"`
	MatchesWon    int      `json:"matches_won"`
	MatchesPlayed int      `json:"matches_played"`
}

// WinRate returns won/played, or 0 for a player who has not played yet.
func (p Player) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.MatchesWon) / float64(p.MatchesPlayed)
}

// Match is one bracket node. Unassigned sides are nil.
type Match struct {
	ID       MatchID     `json:"id"`
	Round    int         `json:"round"`
	Slot     int         `json:"slot"`
	Player1  *PlayerID   `json:"player1_id"`
	Player2  *PlayerID   `json:"player2_id"`
	Score1   *int        `json:"player1_score"`
	Score2   *int        `json:"player2_score"`
	WinnerID *PlayerID   `json:"winner_id"`
	Status   MatchStatus `json:"status"`
}

// IsDone reports whether the match has been closed.
func (m Match) IsDone() bool {
	return m.Status == StatusDone
}

// HasBothPlayers reports whether both sides are assigned.
func (m Match) HasBothPlayers() bool {
	return m.Player1 != nil && m.Player2 != nil
}

// Position returns the (round, slot) key of the match.
func (m Match) Position() Position {
	return Position{Round: m.Round, Slot: m.Slot}
}

// Loser returns the losing participant of a DONE match played by two real players.
func (m Match) Loser() (PlayerID, bool) {
	if !m.IsDone() || !m.HasBothPlayers() || m.WinnerID == nil {
		return 0, false
	}
	switch *m.WinnerID {
	case *m.Player1:
		return *m.Player2, true
	case *m.Player2:
		return *m.Player1, true
	default:
		return 0, false
	}
}

// Position is the unique (round, slot) key of a match.
type Position struct {
	Round int `json:"round"`
	Slot  int `json:"slot"`
}

// Side selects participant 1 or participant 2 of a match.
type Side int

const (
	SideOne Side = 1
	SideTwo Side = 2
)

// FeedTarget returns where the winner of (round, slot) plays next:
// slot ceil(s/2) of the following round, side one for odd slots and side two for even ones.
func FeedTarget(round, slot int) (Position, Side) {
	side := SideTwo
	if slot%2 == 1 {
		side = SideOne
	}
	return Position{Round: round + 1, Slot: (slot + 1) / 2}, side
}

// MatchSeed is a row handed to the ledger when a bracket is built.
type MatchSeed struct {
	Round   int
	Slot    int
	Player1 *PlayerID
	Player2 *PlayerID
}

// ParticipantUpdate is a new participant assignment for an existing match.
type ParticipantUpdate struct {
	Round   int
	Slot    int
	Player1 *PlayerID
	Player2 *PlayerID
}

// PlayerRef returns a pointer to a copy of id.
func PlayerRef(id PlayerID) *PlayerID {
	return &id
}

func samePlayer(a, b *PlayerID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func indexByPosition(matches []Match) map[Position]Match {
	index := make(map[Position]Match, len(matches))
	for _, m := range matches {
		index[m.Position()] = m
	}
	return index
}
