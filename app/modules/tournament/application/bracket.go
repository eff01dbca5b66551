package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/events"
	"github.com/uptrace/bun"
)

const (
	placementBye         = "bye"
	placementPropagation = "propagation"
	placementBackfill    = "backfill"
)

// BuildBracket lays out a bracket for every registered player (ordered by name) and
// closes round-one byes. The caller is expected to have reset the previous bracket.
func (s *TournamentService) BuildBracket(ctx context.Context) (*BracketSummary, error) {
	return run(s, ctx, "BuildBracket", "bracket", func(ctx context.Context, db bun.IDB) (results.OperationResult[*BracketSummary, error], error) {
		return s.buildBracketLogic(ctx, db)
	})
}

func (s *TournamentService) buildBracketLogic(ctx context.Context, db bun.IDB) (results.OperationResult[*BracketSummary, error], error) {
	players, err := s.loadPlayers(ctx, db)
	if err != nil {
		return results.OperationResult[*BracketSummary, error]{}, err
	}

	ids := make([]tournamentdomain.PlayerID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}

	seeds, err := tournamentdomain.BuildBracket(ids)
	if err != nil {
		return results.FailureResult[*BracketSummary, error](err), nil
	}

	if err := s.repo.InsertMatches(ctx, db, seeds); err != nil {
		return results.OperationResult[*BracketSummary, error]{}, err
	}

	byes, err := s.resolveByesLogic(ctx, db)
	if err != nil {
		return results.OperationResult[*BracketSummary, error]{}, err
	}

	size := tournamentdomain.BracketSize(len(ids))
	return results.SuccessResult[*BracketSummary, error](&BracketSummary{
		Players: len(ids),
		Matches: len(seeds),
		Rounds:  tournamentdomain.RoundCount(size),
		Byes:    byes,
	}), nil
}

// ResolveByes closes round-one matches that have a single participant and places
// their winners into round two.
func (s *TournamentService) ResolveByes(ctx context.Context) (int, error) {
	return run(s, ctx, "ResolveByes", "round 1", func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		closed, err := s.resolveByesLogic(ctx, db)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](closed), nil
	})
}

func (s *TournamentService) resolveByesLogic(ctx context.Context, db bun.IDB) (int, error) {
	matches, err := s.loadMatches(ctx, db)
	if err != nil {
		return 0, err
	}

	outcome := tournamentdomain.ResolveByes(matches)
	for _, bye := range outcome.Byes {
		if err := s.repo.CloseBye(ctx, db, bye.MatchID, bye.Winner); err != nil {
			return 0, fmt.Errorf("failed to close bye in slot %d: %w", bye.Slot, err)
		}
	}
	if err := s.applyUpdates(ctx, db, outcome.Placements); err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RecordPlacements(ctx, placementBye, len(outcome.Placements))
	}
	return len(outcome.Byes), nil
}

// AdvanceWinners recomputes next-round participants from completed matches. It
// returns the number of matches rewritten; a repeated call returns 0.
func (s *TournamentService) AdvanceWinners(ctx context.Context) (int, error) {
	return run(s, ctx, "AdvanceWinners", "bracket", func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		advanced, err := s.advanceLogic(ctx, db)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](advanced), nil
	})
}

func (s *TournamentService) advanceLogic(ctx context.Context, db bun.IDB) (int, error) {
	matches, err := s.loadMatches(ctx, db)
	if err != nil {
		return 0, err
	}

	updates := tournamentdomain.Propagate(matches, s.config.Policy)
	if err := s.applyUpdates(ctx, db, updates); err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RecordPlacements(ctx, placementPropagation, len(updates))
	}
	return len(updates), nil
}

// Backfill draws round-one losers into structurally open round-two slots. A nil seed
// uses a non-deterministic source.
func (s *TournamentService) Backfill(ctx context.Context, seed *int64) (int, error) {
	filled, err := run(s, ctx, "Backfill", seedIdentifier(seed), func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		filled, err := s.backfillLogic(ctx, db, seed)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](filled), nil
	})
	if err != nil {
		return 0, err
	}

	if filled > 0 {
		s.publish(ctx, tournamentevents.BackfillDrawnV1, tournamentevents.BackfillDrawnPayload{Filled: filled, Seed: seed})
	}
	return filled, nil
}

func (s *TournamentService) backfillLogic(ctx context.Context, db bun.IDB, seed *int64) (int, error) {
	matches, err := s.loadMatches(ctx, db)
	if err != nil {
		return 0, err
	}

	updates := tournamentdomain.DrawBackfill(matches, s.config.RandomSource(seed))
	if err := s.applyUpdates(ctx, db, updates); err != nil {
		return 0, err
	}

	if len(updates) == 0 {
		s.logger.InfoContext(ctx, "No round-two slot to backfill",
			attr.ExtractCorrelationID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.RecordPlacements(ctx, placementBackfill, len(updates))
	}
	return len(updates), nil
}

func (s *TournamentService) applyUpdates(ctx context.Context, db bun.IDB, updates []tournamentdomain.ParticipantUpdate) error {
	for _, u := range updates {
		if err := s.repo.UpdateMatchParticipants(ctx, db, u); err != nil {
			return fmt.Errorf("failed to place participants in R%d S%d: %w", u.Round, u.Slot, err)
		}
	}
	return nil
}

// ListMatches returns the bracket ordered by round and slot.
func (s *TournamentService) ListMatches(ctx context.Context) ([]tournamentdomain.Match, error) {
	return run(s, ctx, "ListMatches", "all", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]tournamentdomain.Match, error], error) {
		matches, err := s.loadMatches(ctx, db)
		if err != nil {
			return results.OperationResult[[]tournamentdomain.Match, error]{}, err
		}
		return results.SuccessResult[[]tournamentdomain.Match, error](matches), nil
	})
}

// ListPendingMatches returns the matches ready for score entry.
func (s *TournamentService) ListPendingMatches(ctx context.Context) ([]tournamentdomain.Match, error) {
	return run(s, ctx, "ListPendingMatches", "pending", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]tournamentdomain.Match, error], error) {
		rows, err := s.repo.ListPendingMatches(ctx, db)
		if err != nil {
			return results.OperationResult[[]tournamentdomain.Match, error]{}, err
		}
		matches := make([]tournamentdomain.Match, len(rows))
		for i, row := range rows {
			matches[i] = row.ToDomain()
		}
		return results.SuccessResult[[]tournamentdomain.Match, error](matches), nil
	})
}

// GetMatch returns a single match.
func (s *TournamentService) GetMatch(ctx context.Context, id tournamentdomain.MatchID) (*tournamentdomain.Match, error) {
	return run(s, ctx, "GetMatch", matchIdentifier(id), func(ctx context.Context, db bun.IDB) (results.OperationResult[*tournamentdomain.Match, error], error) {
		match, err := s.getMatchLogic(ctx, db, id)
		if err != nil {
			if errors.Is(err, tournamentdomain.ErrNotFound) {
				return results.FailureResult[*tournamentdomain.Match, error](err), nil
			}
			return results.OperationResult[*tournamentdomain.Match, error]{}, err
		}
		return results.SuccessResult[*tournamentdomain.Match, error](match), nil
	})
}

func (s *TournamentService) getMatchLogic(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID) (*tournamentdomain.Match, error) {
	row, err := s.repo.GetMatch(ctx, db, id)
	if err != nil {
		return nil, mapRepoError(err, matchIdentifier(id))
	}
	match := row.ToDomain()
	return &match, nil
}

func matchIdentifier(id tournamentdomain.MatchID) string {
	return fmt.Sprintf("match %d", id)
}

func seedIdentifier(seed *int64) string {
	if seed == nil {
		return "random"
	}
	return fmt.Sprintf("seed %d", *seed)
}

func bracketGeneratedPayload(summary *BracketSummary) tournamentevents.BracketGeneratedPayload {
	return tournamentevents.BracketGeneratedPayload{
		Players:     summary.Players,
		Matches:     summary.Matches,
		Rounds:      summary.Rounds,
		Byes:        summary.Byes,
		GeneratedAt: time.Now().UTC(),
	}
}
