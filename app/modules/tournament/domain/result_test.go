package tournamentdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateResult(t *testing.T) {
	open := Match{ID: 4, Round: 1, Slot: 1, Player1: PlayerRef(1), Player2: PlayerRef(2), Status: StatusPending}

	tests := []struct {
		name       string
		match      Match
		s1, s2     int
		wantErr    error
		wantWinner PlayerID
	}{
		{name: "side one wins", match: open, s1: 11, s2: 7, wantWinner: 1},
		{name: "side two wins", match: open, s1: 9, s2: 11, wantWinner: 2},
		{name: "zero is a valid score", match: open, s1: 0, s2: 11, wantWinner: 2},
		{name: "tie", match: open, s1: 11, s2: 11, wantErr: ErrTiedScore},
		{name: "tie at zero", match: open, s1: 0, s2: 0, wantErr: ErrTiedScore},
		{name: "negative score", match: open, s1: -1, s2: 11, wantErr: ErrInvalidInput},
		{
			name:    "already closed",
			match:   closed(1, 1, 1, 2, 11, 3),
			s1:      11,
			s2:      5,
			wantErr: ErrAlreadyClosed,
		},
		{
			name:    "missing participant",
			match:   pending(2, 1, PlayerRef(1), nil),
			s1:      11,
			s2:      5,
			wantErr: ErrIncompleteMatch,
		},
		{
			name:    "closed check runs before completeness",
			match:   Match{Round: 1, Slot: 3, Player1: PlayerRef(5), Status: StatusDone},
			s1:      1,
			s2:      1,
			wantErr: ErrAlreadyClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateResult(tt.match, tt.s1, tt.s2)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, MatchResult{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWinner, got.Winner)
			assert.Equal(t, tt.match.ID, got.MatchID)
			assert.Equal(t, tt.s1, got.Score1)
			assert.Equal(t, tt.s2, got.Score2)
		})
	}
}
