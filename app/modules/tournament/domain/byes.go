package tournamentdomain

import "sort"

// Bye is a round-one match closed automatically because only one side is assigned.
type Bye struct {
	MatchID MatchID
	Slot    int
	Winner  PlayerID
}

// ByeOutcome lists the matches to close as byes and the round-two placements they cause.
type ByeOutcome struct {
	Byes       []Bye
	Placements []ParticipantUpdate
}

// ResolveByes finds round-one matches with exactly one real participant.
//
// Each one closes 0-0 in favour of the present player, who is placed into
// round two at FeedTarget. Placement stops at round two.
func ResolveByes(matches []Match) ByeOutcome {
	var out ByeOutcome

	index := indexByPosition(matches)
	placed := make(map[Position]Match)

	roundOne := make([]Match, 0)
	for _, m := range matches {
		if m.Round == 1 {
			roundOne = append(roundOne, m)
		}
	}
	sort.Slice(roundOne, func(i, j int) bool { return roundOne[i].Slot < roundOne[j].Slot })

	for _, m := range roundOne {
		if m.IsDone() {
			continue
		}
		if (m.Player1 == nil) == (m.Player2 == nil) {
			continue
		}

		winner := m.Player1
		if winner == nil {
			winner = m.Player2
		}
		out.Byes = append(out.Byes, Bye{MatchID: m.ID, Slot: m.Slot, Winner: *winner})

		target, side := FeedTarget(m.Round, m.Slot)
		next, ok := placed[target]
		if !ok {
			next, ok = index[target]
			if !ok {
				continue
			}
		}
		if side == SideOne {
			next.Player1 = PlayerRef(*winner)
		} else {
			next.Player2 = PlayerRef(*winner)
		}
		placed[target] = next
	}

	for _, next := range placed {
		out.Placements = append(out.Placements, ParticipantUpdate{
			Round:   next.Round,
			Slot:    next.Slot,
			Player1: next.Player1,
			Player2: next.Player2,
		})
	}
	sortUpdates(out.Placements)

	return out
}

func sortUpdates(updates []ParticipantUpdate) {
	sort.Slice(updates, func(i, j int) bool {
		if updates[i].Round != updates[j].Round {
			return updates[i].Round < updates[j].Round
		}
		return updates[i].Slot < updates[j].Slot
	})
}
