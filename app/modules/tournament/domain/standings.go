package tournamentdomain

import "sort"

// Standing is a player row in the tournament table.
type Standing struct {
	Player
	WinRate float64 `json:"win_rate"`
}

// RankStandings orders players by wins, then points scored, then name.
func RankStandings(players []Player) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{Player: p, WinRate: p.WinRate()}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MatchesWon != b.MatchesWon {
			return a.MatchesWon > b.MatchesWon
		}
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		return a.Name < b.Name
	})
	return out
}
