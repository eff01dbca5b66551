package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// RecordResult validates and stores a score, closing the match and crediting both
// players. It never touches later rounds.
func (s *TournamentService) RecordResult(ctx context.Context, id tournamentdomain.MatchID, score1, score2 int) (*tournamentdomain.Match, error) {
	return run(s, ctx, "RecordResult", matchIdentifier(id), func(ctx context.Context, db bun.IDB) (results.OperationResult[*tournamentdomain.Match, error], error) {
		return s.recordResultLogic(ctx, db, id, score1, score2)
	})
}

func (s *TournamentService) recordResultLogic(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID, score1, score2 int) (results.OperationResult[*tournamentdomain.Match, error], error) {
	match, err := s.getMatchLogic(ctx, db, id)
	if err != nil {
		if errors.Is(err, tournamentdomain.ErrNotFound) {
			return results.FailureResult[*tournamentdomain.Match, error](err), nil
		}
		return results.OperationResult[*tournamentdomain.Match, error]{}, err
	}

	result, err := tournamentdomain.EvaluateResult(*match, score1, score2)
	if err != nil {
		return results.FailureResult[*tournamentdomain.Match, error](err), nil
	}

	if err := s.repo.SetMatchResult(ctx, db, result); err != nil {
		// Closed between the read and the guarded update.
		if errors.Is(err, tournamentdb.ErrNoRowsAffected) {
			return results.FailureResult[*tournamentdomain.Match, error](
				fmt.Errorf("%w: %s", tournamentdomain.ErrAlreadyClosed, matchIdentifier(id)),
			), nil
		}
		return results.OperationResult[*tournamentdomain.Match, error]{}, err
	}

	updated, err := s.getMatchLogic(ctx, db, id)
	if err != nil {
		return results.OperationResult[*tournamentdomain.Match, error]{}, err
	}
	return results.SuccessResult[*tournamentdomain.Match, error](updated), nil
}
