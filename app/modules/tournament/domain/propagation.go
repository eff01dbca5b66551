package tournamentdomain

import "sort"

// PropagationPolicy tunes how Propagate treats downstream matches.
type PropagationPolicy struct {
	// OverwriteCompleted lets propagation rewrite participants of matches that are already DONE.
	OverwriteCompleted bool
}

// Propagate recomputes next-round participants from the current match state and returns
// only the matches whose participants change. Applying the result and calling Propagate
// again yields no updates.
//
// For every side of a match in round r+1 the feeding match in round r decides:
// DONE with a winner places that winner, anything else clears the side. A side with no
// feeding match (a compacted round-one gap) is left alone so bye and backfill
// placements survive.
func Propagate(matches []Match, policy PropagationPolicy) []ParticipantUpdate {
	index := indexByPosition(matches)

	ordered := make([]Match, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Round != ordered[j].Round {
			return ordered[i].Round < ordered[j].Round
		}
		return ordered[i].Slot < ordered[j].Slot
	})

	var updates []ParticipantUpdate
	for _, next := range ordered {
		if next.Round < 2 {
			continue
		}
		if next.IsDone() && !policy.OverwriteCompleted {
			continue
		}

		p1 := feedSide(index, next.Round-1, 2*next.Slot-1, next.Player1)
		p2 := feedSide(index, next.Round-1, 2*next.Slot, next.Player2)

		if samePlayer(p1, next.Player1) && samePlayer(p2, next.Player2) {
			continue
		}
		updates = append(updates, ParticipantUpdate{
			Round:   next.Round,
			Slot:    next.Slot,
			Player1: p1,
			Player2: p2,
		})
	}

	return updates
}

func feedSide(index map[Position]Match, round, slot int, current *PlayerID) *PlayerID {
	feeder, ok := index[Position{Round: round, Slot: slot}]
	if !ok {
		return current
	}
	if feeder.IsDone() && feeder.WinnerID != nil {
		return PlayerRef(*feeder.WinnerID)
	}
	return nil
}

// ApplyUpdates returns a copy of matches with the participant updates applied.
func ApplyUpdates(matches []Match, updates []ParticipantUpdate) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)

	pos := make(map[Position]int, len(out))
	for i, m := range out {
		pos[m.Position()] = i
	}
	for _, u := range updates {
		i, ok := pos[Position{Round: u.Round, Slot: u.Slot}]
		if !ok {
			continue
		}
		out[i].Player1 = u.Player1
		out[i].Player2 = u.Player2
	}
	return out
}
