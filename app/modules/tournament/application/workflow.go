package tournamentservice

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/events"
)

// GenerateBracket replaces the current bracket: reset keeping players, build with
// byes, then advance. The roster is checked first so a failed build never wipes an
// existing bracket.
func (s *TournamentService) GenerateBracket(ctx context.Context) (*BracketSummary, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, fmt.Errorf("%w: at least 2 players are required, got %d", tournamentdomain.ErrInvalidInput, len(players))
	}

	if err := s.resetTournament(ctx, true); err != nil {
		return nil, err
	}

	summary, err := s.BuildBracket(ctx)
	if err != nil {
		return nil, err
	}

	advanced, err := s.AdvanceWinners(ctx)
	if err != nil {
		return nil, err
	}
	summary.Advanced = advanced

	s.logger.InfoContext(ctx, "Bracket generated",
		attr.ExtractCorrelationID(ctx),
		attr.Int("players", summary.Players),
		attr.Int("matches", summary.Matches),
		attr.Int("rounds", summary.Rounds),
		attr.Int("byes", summary.Byes),
	)
	s.publish(ctx, tournamentevents.BracketGeneratedV1, bracketGeneratedPayload(summary))
	return summary, nil
}

// SubmitResult records a score, advances winners, draws a backfill into round two and
// advances again when the draw placed anyone.
func (s *TournamentService) SubmitResult(ctx context.Context, id tournamentdomain.MatchID, score1, score2 int) (*ResultSummary, error) {
	match, err := s.RecordResult(ctx, id, score1, score2)
	if err != nil {
		return nil, err
	}

	advanced, err := s.AdvanceWinners(ctx)
	if err != nil {
		return nil, err
	}

	filled, err := s.Backfill(ctx, nil)
	if err != nil {
		return nil, err
	}

	if filled > 0 {
		more, err := s.AdvanceWinners(ctx)
		if err != nil {
			return nil, err
		}
		advanced += more
	}

	summary := &ResultSummary{Match: *match, Advanced: advanced, Backfilled: filled}

	var winner tournamentdomain.PlayerID
	if match.WinnerID != nil {
		winner = *match.WinnerID
	}
	s.publish(ctx, tournamentevents.ResultRecordedV1, tournamentevents.ResultRecordedPayload{
		MatchID:    match.ID,
		Round:      match.Round,
		Slot:       match.Slot,
		WinnerID:   winner,
		Score1:     score1,
		Score2:     score2,
		Advanced:   advanced,
		Backfilled: filled,
	})
	return summary, nil
}
