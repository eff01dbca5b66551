package tournamentservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	"github.com/uptrace/bun"
)

const byeLabel = "BYE"

// dotEscaper makes a player name safe inside a quoted DOT label.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ", "\r", " ")

// ExportBracketDOT renders the current bracket as a Graphviz digraph.
func (s *TournamentService) ExportBracketDOT(ctx context.Context) (string, error) {
	return run(s, ctx, "ExportBracketDOT", "bracket", func(ctx context.Context, db bun.IDB) (results.OperationResult[string, error], error) {
		players, err := s.loadPlayers(ctx, db)
		if err != nil {
			return results.OperationResult[string, error]{}, err
		}
		matches, err := s.loadMatches(ctx, db)
		if err != nil {
			return results.OperationResult[string, error]{}, err
		}

		names := make(map[tournamentdomain.PlayerID]string, len(players))
		for _, p := range players {
			names[p.ID] = p.Name
		}
		return results.SuccessResult[string, error](RenderBracketDOT(matches, names)), nil
	})
}

// RenderBracketDOT draws one node per match keyed r{round}s{slot} with an edge to the
// match its winner feeds. Matches with no participant at all are left out.
func RenderBracketDOT(matches []tournamentdomain.Match, names map[tournamentdomain.PlayerID]string) string {
	drawn := make(map[tournamentdomain.Position]struct{}, len(matches))
	for _, m := range matches {
		if m.Player1 != nil || m.Player2 != nil {
			drawn[m.Position()] = struct{}{}
		}
	}

	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("  rankdir=\"LR\";\n")
	b.WriteString("  node [shape=box];\n")

	for _, m := range matches {
		if _, ok := drawn[m.Position()]; !ok {
			continue
		}
		label := fmt.Sprintf("R%d · M%d\\n%s vs %s", m.Round, m.Slot, displayName(m.Player1, names), displayName(m.Player2, names))
		if m.IsDone() && m.Score1 != nil && m.Score2 != nil {
			label += fmt.Sprintf("\\n%d - %d", *m.Score1, *m.Score2)
		}
		fmt.Fprintf(&b, "  %s [label=\"%s\"];\n", nodeID(m.Position()), label)
	}

	for _, m := range matches {
		if _, ok := drawn[m.Position()]; !ok {
			continue
		}
		target, _ := tournamentdomain.FeedTarget(m.Round, m.Slot)
		if _, ok := drawn[target]; !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s;\n", nodeID(m.Position()), nodeID(target))
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeID(p tournamentdomain.Position) string {
	return fmt.Sprintf("r%ds%d", p.Round, p.Slot)
}

func displayName(id *tournamentdomain.PlayerID, names map[tournamentdomain.PlayerID]string) string {
	if id == nil {
		return byeLabel
	}
	name, ok := names[*id]
	if !ok {
		name = fmt.Sprintf("#%d", *id)
	}
	return dotEscaper.Replace(name)
}
