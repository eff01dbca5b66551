package tournamentdomain

// materialize turns builder seeds into pending matches with sequential ids.
func materialize(seeds []MatchSeed) []Match {
	out := make([]Match, len(seeds))
	for i, s := range seeds {
		out[i] = Match{
			ID:      MatchID(i + 1),
			Round:   s.Round,
			Slot:    s.Slot,
			Player1: s.Player1,
			Player2: s.Player2,
			Status:  StatusPending,
		}
	}
	return out
}

func playerIDs(n int) []PlayerID {
	out := make([]PlayerID, n)
	for i := range out {
		out[i] = PlayerID(i + 1)
	}
	return out
}

func pending(round, slot int, p1, p2 *PlayerID) Match {
	return Match{Round: round, Slot: slot, Player1: p1, Player2: p2, Status: StatusPending}
}

func closed(round, slot int, p1, p2 PlayerID, s1, s2 int) Match {
	winner := p1
	if s2 > s1 {
		winner = p2
	}
	return Match{
		Round:    round,
		Slot:     slot,
		Player1:  PlayerRef(p1),
		Player2:  PlayerRef(p2),
		Score1:   &s1,
		Score2:   &s2,
		WinnerID: PlayerRef(winner),
		Status:   StatusDone,
	}
}

func find(matches []Match, round, slot int) Match {
	for _, m := range matches {
		if m.Round == round && m.Slot == slot {
			return m
		}
	}
	return Match{}
}

func applyByes(matches []Match, outcome ByeOutcome) []Match {
	out := ApplyUpdates(matches, outcome.Placements)
	for _, b := range outcome.Byes {
		for i := range out {
			if out[i].ID == b.MatchID {
				zero := 0
				out[i].Score1, out[i].Score2 = &zero, &zero
				out[i].WinnerID = PlayerRef(b.Winner)
				out[i].Status = StatusDone
			}
		}
	}
	return out
}
