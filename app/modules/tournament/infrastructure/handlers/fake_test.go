package tournamenthandlers

import (
	"context"
	"sync"

	tournamentservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	mu    sync.Mutex
	trace []string

	AddPlayersFunc         func(ctx context.Context, names []string) (int, error)
	ImportPlayersFunc      func(ctx context.Context, filename string, data []byte) (int, error)
	ListPlayersFunc        func(ctx context.Context) ([]tournamentdomain.Player, error)
	GetPlayerFunc          func(ctx context.Context, id tournamentdomain.PlayerID) (*tournamentdomain.Player, error)
	StandingsFunc          func(ctx context.Context) ([]tournamentdomain.Standing, error)
	StandingsChartFunc     func(ctx context.Context) ([]byte, error)
	AdvanceWinnersFunc     func(ctx context.Context) (int, error)
	BackfillFunc           func(ctx context.Context, seed *int64) (int, error)
	ResetTournamentFunc    func(ctx context.Context, keepPlayers bool) error
	ListMatchesFunc        func(ctx context.Context) ([]tournamentdomain.Match, error)
	ListPendingMatchesFunc func(ctx context.Context) ([]tournamentdomain.Match, error)
	GetMatchFunc           func(ctx context.Context, id tournamentdomain.MatchID) (*tournamentdomain.Match, error)
	ExportBracketDOTFunc   func(ctx context.Context) (string, error)
	GenerateBracketFunc    func(ctx context.Context) (*tournamentservice.BracketSummary, error)
	SubmitResultFunc       func(ctx context.Context, id tournamentdomain.MatchID, s1, s2 int) (*tournamentservice.ResultSummary, error)
}

func (f *FakeService) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) AddPlayers(ctx context.Context, names []string) (int, error) {
	f.record("AddPlayers")
	if f.AddPlayersFunc != nil {
		return f.AddPlayersFunc(ctx, names)
	}
	return len(names), nil
}

func (f *FakeService) ImportPlayers(ctx context.Context, filename string, data []byte) (int, error) {
	f.record("ImportPlayers")
	if f.ImportPlayersFunc != nil {
		return f.ImportPlayersFunc(ctx, filename, data)
	}
	return 0, nil
}

func (f *FakeService) ListPlayers(ctx context.Context) ([]tournamentdomain.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx)
	}
	return []tournamentdomain.Player{}, nil
}

func (f *FakeService) GetPlayer(ctx context.Context, id tournamentdomain.PlayerID) (*tournamentdomain.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, id)
	}
	return nil, tournamentdomain.ErrNotFound
}

func (f *FakeService) Standings(ctx context.Context) ([]tournamentdomain.Standing, error) {
	f.record("Standings")
	if f.StandingsFunc != nil {
		return f.StandingsFunc(ctx)
	}
	return []tournamentdomain.Standing{}, nil
}

func (f *FakeService) StandingsChart(ctx context.Context) ([]byte, error) {
	f.record("StandingsChart")
	if f.StandingsChartFunc != nil {
		return f.StandingsChartFunc(ctx)
	}
	return []byte("\x89PNG"), nil
}

func (f *FakeService) BuildBracket(context.Context) (*tournamentservice.BracketSummary, error) {
	f.record("BuildBracket")
	return &tournamentservice.BracketSummary{}, nil
}

func (f *FakeService) ResolveByes(context.Context) (int, error) {
	f.record("ResolveByes")
	return 0, nil
}

func (f *FakeService) AdvanceWinners(ctx context.Context) (int, error) {
	f.record("AdvanceWinners")
	if f.AdvanceWinnersFunc != nil {
		return f.AdvanceWinnersFunc(ctx)
	}
	return 0, nil
}

func (f *FakeService) Backfill(ctx context.Context, seed *int64) (int, error) {
	f.record("Backfill")
	if f.BackfillFunc != nil {
		return f.BackfillFunc(ctx, seed)
	}
	return 0, nil
}

func (f *FakeService) RecordResult(context.Context, tournamentdomain.MatchID, int, int) (*tournamentdomain.Match, error) {
	f.record("RecordResult")
	return &tournamentdomain.Match{}, nil
}

func (f *FakeService) ResetTournament(ctx context.Context, keepPlayers bool) error {
	f.record("ResetTournament")
	if f.ResetTournamentFunc != nil {
		return f.ResetTournamentFunc(ctx, keepPlayers)
	}
	return nil
}

func (f *FakeService) ListMatches(ctx context.Context) ([]tournamentdomain.Match, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx)
	}
	return []tournamentdomain.Match{}, nil
}

func (f *FakeService) ListPendingMatches(ctx context.Context) ([]tournamentdomain.Match, error) {
	f.record("ListPendingMatches")
	if f.ListPendingMatchesFunc != nil {
		return f.ListPendingMatchesFunc(ctx)
	}
	return []tournamentdomain.Match{}, nil
}

func (f *FakeService) GetMatch(ctx context.Context, id tournamentdomain.MatchID) (*tournamentdomain.Match, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, id)
	}
	return nil, tournamentdomain.ErrNotFound
}

func (f *FakeService) ExportBracketDOT(ctx context.Context) (string, error) {
	f.record("ExportBracketDOT")
	if f.ExportBracketDOTFunc != nil {
		return f.ExportBracketDOTFunc(ctx)
	}
	return "digraph G {\n}\n", nil
}

func (f *FakeService) GenerateBracket(ctx context.Context) (*tournamentservice.BracketSummary, error) {
	f.record("GenerateBracket")
	if f.GenerateBracketFunc != nil {
		return f.GenerateBracketFunc(ctx)
	}
	return &tournamentservice.BracketSummary{}, nil
}

func (f *FakeService) SubmitResult(ctx context.Context, id tournamentdomain.MatchID, s1, s2 int) (*tournamentservice.ResultSummary, error) {
	f.record("SubmitResult")
	if f.SubmitResultFunc != nil {
		return f.SubmitResultFunc(ctx, id, s1, s2)
	}
	return &tournamentservice.ResultSummary{}, nil
}
