package tournamentservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentevents "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/events"
	"github.com/uptrace/bun"
)

// ResetTournament deletes the bracket. With keepPlayers the roster stays and its
// totals are zeroed, otherwise players are deleted too.
func (s *TournamentService) ResetTournament(ctx context.Context, keepPlayers bool) error {
	if err := s.resetTournament(ctx, keepPlayers); err != nil {
		return err
	}
	s.publish(ctx, tournamentevents.TournamentResetV1, tournamentevents.TournamentResetPayload{KeepPlayers: keepPlayers})
	return nil
}

func (s *TournamentService) resetTournament(ctx context.Context, keepPlayers bool) error {
	identifier := "full"
	if keepPlayers {
		identifier = "keep players"
	}
	_, err := run(s, ctx, "ResetTournament", identifier, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		if err := s.repo.ResetTournament(ctx, db, keepPlayers); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	})
	return err
}
