package tournamentdomain

import "fmt"

// MatchResult is a validated score ready to be written to the ledger.
type MatchResult struct {
	MatchID MatchID
	Player1 PlayerID
	Player2 PlayerID
	Score1  int
	Score2  int
	Winner  PlayerID
}

// EvaluateResult checks a submitted score against the match and picks the winner.
func EvaluateResult(m Match, score1, score2 int) (MatchResult, error) {
	if m.IsDone() {
		return MatchResult{}, fmt.Errorf("%w: match %d", ErrAlreadyClosed, m.ID)
	}
	if !m.HasBothPlayers() {
		return MatchResult{}, fmt.Errorf("%w: match %d", ErrIncompleteMatch, m.ID)
	}
	if score1 < 0 || score2 < 0 {
		return MatchResult{}, fmt.Errorf("%w: scores must be non-negative, got %d-%d", ErrInvalidInput, score1, score2)
	}
	if score1 == score2 {
		return MatchResult{}, fmt.Errorf("%w: %d-%d", ErrTiedScore, score1, score2)
	}

	winner := *m.Player1
	if score2 > score1 {
		winner = *m.Player2
	}

	return MatchResult{
		MatchID: m.ID,
		Player1: *m.Player1,
		Player2: *m.Player2,
		Score1:  score1,
		Score2:  score2,
		Winner:  winner,
	}, nil
}
