package tournamentservice

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	"github.com/uptrace/bun"
)

// AddPlayers registers names, ignoring blanks and names already present.
func (s *TournamentService) AddPlayers(ctx context.Context, names []string) (int, error) {
	return run(s, ctx, "AddPlayers", fmt.Sprintf("%d names", len(names)), func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		return s.addPlayersLogic(ctx, db, names)
	})
}

func (s *TournamentService) addPlayersLogic(ctx context.Context, db bun.IDB, names []string) (results.OperationResult[int, error], error) {
	added, err := s.repo.AddPlayers(ctx, db, names)
	if err != nil {
		return results.OperationResult[int, error]{}, err
	}
	return results.SuccessResult[int, error](added), nil
}

// ImportPlayers parses an uploaded roster and registers the names it contains.
func (s *TournamentService) ImportPlayers(ctx context.Context, filename string, data []byte) (int, error) {
	return run(s, ctx, "ImportPlayers", filename, func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		parser, err := s.parsers.GetParser(filename)
		if err != nil {
			return results.FailureResult[int, error](fmt.Errorf("%w: %v", tournamentdomain.ErrInvalidInput, err)), nil
		}
		names, err := parser.Parse(data)
		if err != nil {
			return results.FailureResult[int, error](fmt.Errorf("%w: %v", tournamentdomain.ErrInvalidInput, err)), nil
		}
		return s.addPlayersLogic(ctx, db, names)
	})
}

// ListPlayers returns all players ordered by name.
func (s *TournamentService) ListPlayers(ctx context.Context) ([]tournamentdomain.Player, error) {
	return run(s, ctx, "ListPlayers", "all", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]tournamentdomain.Player, error], error) {
		players, err := s.loadPlayers(ctx, db)
		if err != nil {
			return results.OperationResult[[]tournamentdomain.Player, error]{}, err
		}
		return results.SuccessResult[[]tournamentdomain.Player, error](players), nil
	})
}

// GetPlayer returns a single player.
func (s *TournamentService) GetPlayer(ctx context.Context, id tournamentdomain.PlayerID) (*tournamentdomain.Player, error) {
	return run(s, ctx, "GetPlayer", fmt.Sprintf("player %d", id), func(ctx context.Context, db bun.IDB) (results.OperationResult[*tournamentdomain.Player, error], error) {
		row, err := s.repo.GetPlayer(ctx, db, id)
		if err != nil {
			if mapped := mapRepoError(err, fmt.Sprintf("player %d", id)); isDomainError(mapped) {
				return results.FailureResult[*tournamentdomain.Player, error](mapped), nil
			}
			return results.OperationResult[*tournamentdomain.Player, error]{}, err
		}
		player := row.ToDomain()
		return results.SuccessResult[*tournamentdomain.Player, error](&player), nil
	})
}

// Standings ranks players by wins, points and name.
func (s *TournamentService) Standings(ctx context.Context) ([]tournamentdomain.Standing, error) {
	return run(s, ctx, "Standings", "all", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]tournamentdomain.Standing, error], error) {
		players, err := s.loadPlayers(ctx, db)
		if err != nil {
			return results.OperationResult[[]tournamentdomain.Standing, error]{}, err
		}
		return results.SuccessResult[[]tournamentdomain.Standing, error](tournamentdomain.RankStandings(players)), nil
	})
}

// StandingsChart renders wins per player as a PNG bar chart.
func (s *TournamentService) StandingsChart(ctx context.Context) ([]byte, error) {
	return run(s, ctx, "StandingsChart", "all", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]byte, error], error) {
		players, err := s.loadPlayers(ctx, db)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		png, err := GenerateStandingsChart(tournamentdomain.RankStandings(players), s.config.Palette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render standings chart: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
}

func (s *TournamentService) loadPlayers(ctx context.Context, db bun.IDB) ([]tournamentdomain.Player, error) {
	rows, err := s.repo.ListPlayers(ctx, db)
	if err != nil {
		return nil, err
	}
	players := make([]tournamentdomain.Player, len(rows))
	for i, row := range rows {
		players[i] = row.ToDomain()
	}
	return players, nil
}

func (s *TournamentService) loadMatches(ctx context.Context, db bun.IDB) ([]tournamentdomain.Match, error) {
	rows, err := s.repo.ListMatches(ctx, db)
	if err != nil {
		return nil, err
	}
	matches := make([]tournamentdomain.Match, len(rows))
	for i, row := range rows {
		matches[i] = row.ToDomain()
	}
	return matches, nil
}
