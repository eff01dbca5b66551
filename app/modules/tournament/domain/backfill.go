package tournamentdomain

import (
	"math/rand/v2"
	"sort"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a non-deterministic random source.
func NewShuffler() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededShuffler returns a random source that repeats its draws for the same seed.
func NewSeededShuffler(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// DrawBackfill fills open round-two slots with randomly drawn round-one losers.
//
// A slot is open when it is PENDING, has exactly one participant, and its empty side
// has no round-one match feeding it. The pool holds losers of DONE round-one matches
// played by two real players, minus anyone already placed in round two or later.
// Slots are filled in ascending order and no loser is drawn twice. The returned
// updates are the filled slots; an empty result is a normal outcome.
func DrawBackfill(matches []Match, rng Shuffler) []ParticipantUpdate {
	index := indexByPosition(matches)

	var open []Match
	for _, m := range matches {
		if m.Round != 2 || m.IsDone() {
			continue
		}
		if (m.Player1 == nil) == (m.Player2 == nil) {
			continue
		}
		emptySlot := 2 * m.Slot
		if m.Player1 == nil {
			emptySlot = 2*m.Slot - 1
		}
		if _, fed := index[Position{Round: 1, Slot: emptySlot}]; fed {
			continue
		}
		open = append(open, m)
	}
	if len(open) == 0 {
		return nil
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Slot < open[j].Slot })

	pool := eligibleLosers(matches)
	if len(pool) == 0 {
		return nil
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	updates := make([]ParticipantUpdate, 0, min(len(open), len(pool)))
	for i, m := range open {
		if i >= len(pool) {
			break
		}
		pick := PlayerRef(pool[i])
		u := ParticipantUpdate{Round: m.Round, Slot: m.Slot, Player1: m.Player1, Player2: m.Player2}
		if u.Player1 == nil {
			u.Player1 = pick
		} else {
			u.Player2 = pick
		}
		updates = append(updates, u)
	}

	return updates
}

// eligibleLosers returns round-one losers in slot order, deduplicated and without
// players who already hold a seat in a later round.
func eligibleLosers(matches []Match) []PlayerID {
	seated := make(map[PlayerID]struct{})
	for _, m := range matches {
		if m.Round < 2 {
			continue
		}
		if m.Player1 != nil {
			seated[*m.Player1] = struct{}{}
		}
		if m.Player2 != nil {
			seated[*m.Player2] = struct{}{}
		}
	}

	roundOne := make([]Match, 0)
	for _, m := range matches {
		if m.Round == 1 {
			roundOne = append(roundOne, m)
		}
	}
	sort.Slice(roundOne, func(i, j int) bool { return roundOne[i].Slot < roundOne[j].Slot })

	var pool []PlayerID
	for _, m := range roundOne {
		loser, ok := m.Loser()
		if !ok {
			continue
		}
		if _, taken := seated[loser]; taken {
			continue
		}
		seated[loser] = struct{}{}
		pool = append(pool, loser)
	}
	return pool
}
