package tournamentservice

import (
	"context"
	"sort"
	"strings"
	"sync"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Repo
// ------------------------

// FakeTournamentRepo is an in-memory ledger. Any *Func field overrides the stateful
// behaviour of its method.
type FakeTournamentRepo struct {
	mu    sync.Mutex
	trace []string

	players      map[tournamentdomain.PlayerID]*tournamentdb.Player
	matches      []*tournamentdb.Match
	nextPlayerID tournamentdomain.PlayerID
	nextMatchID  tournamentdomain.MatchID

	ListMatchesFunc             func(ctx context.Context) ([]*tournamentdb.Match, error)
	InsertMatchesFunc           func(ctx context.Context, seeds []tournamentdomain.MatchSeed) error
	UpdateMatchParticipantsFunc func(ctx context.Context, update tournamentdomain.ParticipantUpdate) error
	SetMatchResultFunc          func(ctx context.Context, result tournamentdomain.MatchResult) error
	ResetTournamentFunc         func(ctx context.Context, keepPlayers bool) error
}

func NewFakeTournamentRepo() *FakeTournamentRepo {
	return &FakeTournamentRepo{
		players:      make(map[tournamentdomain.PlayerID]*tournamentdb.Player),
		nextPlayerID: 1,
		nextMatchID:  1,
	}
}

func (f *FakeTournamentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTournamentRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTournamentRepo) AddPlayers(ctx context.Context, db bun.IDB, names []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddPlayers")

	existing := make(map[string]struct{}, len(f.players))
	for _, p := range f.players {
		existing[p.Name] = struct{}{}
	}
	added := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := existing[name]; dup {
			continue
		}
		existing[name] = struct{}{}
		f.players[f.nextPlayerID] = &tournamentdb.Player{ID: f.nextPlayerID, Name: name}
		f.nextPlayerID++
		added++
	}
	return added, nil
}

func (f *FakeTournamentRepo) ListPlayers(ctx context.Context, db bun.IDB) ([]*tournamentdb.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListPlayers")

	out := make([]*tournamentdb.Player, 0, len(f.players))
	for _, p := range f.players {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeTournamentRepo) GetPlayer(ctx context.Context, db bun.IDB, id tournamentdomain.PlayerID) (*tournamentdb.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetPlayer")

	p, ok := f.players[id]
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeTournamentRepo) ListMatches(ctx context.Context, db bun.IDB) ([]*tournamentdb.Match, error) {
	if f.ListMatchesFunc != nil {
		f.mu.Lock()
		f.record("ListMatches")
		f.mu.Unlock()
		return f.ListMatchesFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListMatches")
	return f.sortedMatches(func(*tournamentdb.Match) bool { return true }), nil
}

func (f *FakeTournamentRepo) ListPendingMatches(ctx context.Context, db bun.IDB) ([]*tournamentdb.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListPendingMatches")
	return f.sortedMatches(func(m *tournamentdb.Match) bool {
		return m.Status == tournamentdomain.StatusPending && m.Player1ID != nil && m.Player2ID != nil
	}), nil
}

func (f *FakeTournamentRepo) GetMatch(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID) (*tournamentdb.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetMatch")

	m := f.matchByID(id)
	if m == nil {
		return nil, tournamentdb.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *FakeTournamentRepo) InsertMatches(ctx context.Context, db bun.IDB, seeds []tournamentdomain.MatchSeed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertMatches")
	if f.InsertMatchesFunc != nil {
		return f.InsertMatchesFunc(ctx, seeds)
	}

	for _, s := range seeds {
		row := f.matchAt(s.Round, s.Slot)
		if row == nil {
			row = &tournamentdb.Match{ID: f.nextMatchID, Round: s.Round, Slot: s.Slot}
			f.nextMatchID++
			f.matches = append(f.matches, row)
		}
		row.Player1ID = s.Player1
		row.Player2ID = s.Player2
		row.Player1Score = nil
		row.Player2Score = nil
		row.WinnerID = nil
		row.Status = tournamentdomain.StatusPending
	}
	return nil
}

func (f *FakeTournamentRepo) UpdateMatchParticipants(ctx context.Context, db bun.IDB, update tournamentdomain.ParticipantUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateMatchParticipants")
	if f.UpdateMatchParticipantsFunc != nil {
		return f.UpdateMatchParticipantsFunc(ctx, update)
	}

	row := f.matchAt(update.Round, update.Slot)
	if row == nil {
		return tournamentdb.ErrNoRowsAffected
	}
	row.Player1ID = update.Player1
	row.Player2ID = update.Player2
	return nil
}

func (f *FakeTournamentRepo) SetMatchResult(ctx context.Context, db bun.IDB, result tournamentdomain.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SetMatchResult")
	if f.SetMatchResultFunc != nil {
		return f.SetMatchResultFunc(ctx, result)
	}

	row := f.matchByID(result.MatchID)
	if row == nil || row.Status != tournamentdomain.StatusPending {
		return tournamentdb.ErrNoRowsAffected
	}
	s1, s2 := result.Score1, result.Score2
	row.Player1Score = &s1
	row.Player2Score = &s2
	row.WinnerID = tournamentdomain.PlayerRef(result.Winner)
	row.Status = tournamentdomain.StatusDone

	if p, ok := f.players[result.Player1]; ok {
		p.TotalPoints += s1
		p.MatchesPlayed++
	}
	if p, ok := f.players[result.Player2]; ok {
		p.TotalPoints += s2
		p.MatchesPlayed++
	}
	if p, ok := f.players[result.Winner]; ok {
		p.MatchesWon++
	}
	return nil
}

func (f *FakeTournamentRepo) CloseBye(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID, winner tournamentdomain.PlayerID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CloseBye")

	row := f.matchByID(id)
	if row == nil || row.Status != tournamentdomain.StatusPending {
		return tournamentdb.ErrNoRowsAffected
	}
	zero1, zero2 := 0, 0
	row.Player1Score = &zero1
	row.Player2Score = &zero2
	row.WinnerID = tournamentdomain.PlayerRef(winner)
	row.Status = tournamentdomain.StatusDone
	return nil
}

func (f *FakeTournamentRepo) ResetTournament(ctx context.Context, db bun.IDB, keepPlayers bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ResetTournament")
	if f.ResetTournamentFunc != nil {
		return f.ResetTournamentFunc(ctx, keepPlayers)
	}

	f.matches = nil
	if !keepPlayers {
		f.players = make(map[tournamentdomain.PlayerID]*tournamentdb.Player)
		return nil
	}
	for _, p := range f.players {
		p.TotalPoints, p.MatchesWon, p.MatchesPlayed = 0, 0, 0
	}
	return nil
}

func (f *FakeTournamentRepo) matchByID(id tournamentdomain.MatchID) *tournamentdb.Match {
	for _, m := range f.matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (f *FakeTournamentRepo) matchAt(round, slot int) *tournamentdb.Match {
	for _, m := range f.matches {
		if m.Round == round && m.Slot == slot {
			return m
		}
	}
	return nil
}

func (f *FakeTournamentRepo) sortedMatches(keep func(*tournamentdb.Match) bool) []*tournamentdb.Match {
	out := make([]*tournamentdb.Match, 0, len(f.matches))
	for _, m := range f.matches {
		if keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Topic
	}
	return out
}

// ------------------------
// Fake Shuffler
// ------------------------

// reverseShuffler reverses the pool so the draw order is predictable.
type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}
