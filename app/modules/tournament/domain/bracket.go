package tournamentdomain

import (
	"fmt"
	"math/bits"
)

// BracketSize returns the smallest power of two that fits n players.
func BracketSize(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// RoundCount returns log2(size) for a power-of-two bracket size.
func RoundCount(size int) int {
	if size <= 1 {
		return 0
	}
	return bits.TrailingZeros(uint(size))
}

// BuildBracket lays out a single-elimination skeleton for the given players.
//
// Players are paired in order into round-one slots. Pairs made only of padding are
// dropped, so round-one slots stay contiguous. Every later round is created in full
// with unassigned participants.
func BuildBracket(players []PlayerID) ([]MatchSeed, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("%w: at least 2 players are required, got %d", ErrInvalidInput, len(players))
	}

	seen := make(map[PlayerID]struct{}, len(players))
	for _, id := range players {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: player %d listed twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	size := BracketSize(len(players))
	rounds := RoundCount(size)

	padded := make([]*PlayerID, size)
	for i, id := range players {
		padded[i] = PlayerRef(id)
	}

	seeds := make([]MatchSeed, 0, size-1)

	slot := 0
	for i := 0; i < size; i += 2 {
		if padded[i] == nil && padded[i+1] == nil {
			continue
		}
		slot++
		seeds = append(seeds, MatchSeed{Round: 1, Slot: slot, Player1: padded[i], Player2: padded[i+1]})
	}

	for r := 2; r <= rounds; r++ {
		for s := 1; s <= size>>r; s++ {
			seeds = append(seeds, MatchSeed{Round: r, Slot: s})
		}
	}

	return seeds, nil
}
