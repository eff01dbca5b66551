package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new tournament repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// AddPlayers inserts the given names, skipping blanks and names already registered.
// It returns the number of new players.
func (r *Impl) AddPlayers(ctx context.Context, db bun.IDB, names []string) (int, error) {
	db = r.resolveDB(db)

	seen := make(map[string]struct{}, len(names))
	players := make([]*Player, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		players = append(players, &Player{Name: name})
	}
	if len(players) == 0 {
		return 0, nil
	}

	result, err := db.NewInsert().
		Model(&players).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert players: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

// ListPlayers returns every player ordered by name.
func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB) ([]*Player, error) {
	db = r.resolveDB(db)
	var players []*Player
	if err := db.NewSelect().
		Model(&players).
		Order("name ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// GetPlayer retrieves a player by id.
func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, id tournamentdomain.PlayerID) (*Player, error) {
	db = r.resolveDB(db)
	player := new(Player)
	err := db.NewSelect().
		Model(player).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// ListMatches returns the whole bracket ordered by (round, slot).
func (r *Impl) ListMatches(ctx context.Context, db bun.IDB) ([]*Match, error) {
	db = r.resolveDB(db)
	var matches []*Match
	if err := db.NewSelect().
		Model(&matches).
		Order("round ASC", "slot ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// ListPendingMatches returns playable matches: PENDING with both sides assigned.
func (r *Impl) ListPendingMatches(ctx context.Context, db bun.IDB) ([]*Match, error) {
	db = r.resolveDB(db)
	var matches []*Match
	if err := db.NewSelect().
		Model(&matches).
		Where("status = ?", tournamentdomain.StatusPending).
		Where("player1_id IS NOT NULL").
		Where("player2_id IS NOT NULL").
		Order("round ASC", "slot ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list pending matches: %w", err)
	}
	return matches, nil
}

// GetMatch retrieves a match by id.
func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID) (*Match, error) {
	db = r.resolveDB(db)
	match := new(Match)
	err := db.NewSelect().
		Model(match).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// InsertMatches upserts bracket rows on (round, slot). An existing row is replaced
// by a fresh PENDING match.
func (r *Impl) InsertMatches(ctx context.Context, db bun.IDB, seeds []tournamentdomain.MatchSeed) error {
	if len(seeds) == 0 {
		return nil
	}
	db = r.resolveDB(db)

	now := time.Now()
	rows := make([]*Match, len(seeds))
	for i, s := range seeds {
		rows[i] = &Match{
			Round:     s.Round,
			Slot:      s.Slot,
			Player1ID: s.Player1,
			Player2ID: s.Player2,
			Status:    tournamentdomain.StatusPending,
			UpdatedAt: now,
		}
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (round, slot) DO UPDATE").
		Set("player1_id = EXCLUDED.player1_id").
		Set("player2_id = EXCLUDED.player2_id").
		Set("player1_score = NULL").
		Set("player2_score = NULL").
		Set("winner_id = NULL").
		Set("status = EXCLUDED.status").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert matches: %w", err)
	}
	return nil
}

// UpdateMatchParticipants overwrites both sides of the match at (round, slot).
func (r *Impl) UpdateMatchParticipants(ctx context.Context, db bun.IDB, update tournamentdomain.ParticipantUpdate) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Match)(nil)).
		Set("player1_id = ?", update.Player1).
		Set("player2_id = ?", update.Player2).
		Set("updated_at = ?", time.Now()).
		Where("round = ?", update.Round).
		Where("slot = ?", update.Slot).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match participants: %w", err)
	}
	return requireRows(result)
}

// SetMatchResult closes the match and credits both players' totals.
func (r *Impl) SetMatchResult(ctx context.Context, db bun.IDB, res tournamentdomain.MatchResult) error {
	db = r.resolveDB(db)

	result, err := db.NewUpdate().
		Model((*Match)(nil)).
		Set("player1_score = ?", res.Score1).
		Set("player2_score = ?", res.Score2).
		Set("winner_id = ?", res.Winner).
		Set("status = ?", tournamentdomain.StatusDone).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", res.MatchID).
		Where("status = ?", tournamentdomain.StatusPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set match result: %w", err)
	}
	if err := requireRows(result); err != nil {
		return err
	}

	for _, side := range []struct {
		id    tournamentdomain.PlayerID
		score int
	}{
		{id: res.Player1, score: res.Score1},
		{id: res.Player2, score: res.Score2},
	} {
		if _, err := db.NewUpdate().
			Model((*Player)(nil)).
			Set("total_points = total_points + ?", side.score).
			Set("matches_played = matches_played + 1").
			Where("id = ?", side.id).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to update player %d totals: %w", side.id, err)
		}
	}

	if _, err := db.NewUpdate().
		Model((*Player)(nil)).
		Set("matches_won = matches_won + 1").
		Where("id = ?", res.Winner).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to credit win to player %d: %w", res.Winner, err)
	}

	return nil
}

// CloseBye marks a single-player match DONE 0-0 in favour of winner. Player totals
// are not touched.
func (r *Impl) CloseBye(ctx context.Context, db bun.IDB, id tournamentdomain.MatchID, winner tournamentdomain.PlayerID) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Match)(nil)).
		Set("player1_score = 0").
		Set("player2_score = 0").
		Set("winner_id = ?", winner).
		Set("status = ?", tournamentdomain.StatusDone).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("status = ?", tournamentdomain.StatusPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to close bye: %w", err)
	}
	return requireRows(result)
}

// ResetTournament clears the bracket and either zeroes or removes the players.
func (r *Impl) ResetTournament(ctx context.Context, db bun.IDB, keepPlayers bool) error {
	db = r.resolveDB(db)

	if _, err := db.NewDelete().
		Model((*Match)(nil)).
		Where("TRUE").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}

	if keepPlayers {
		if _, err := db.NewUpdate().
			Model((*Player)(nil)).
			Set("total_points = 0").
			Set("matches_won = 0").
			Set("matches_played = 0").
			Where("TRUE").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to reset player totals: %w", err)
		}
		return nil
	}

	if _, err := db.NewDelete().
		Model((*Player)(nil)).
		Where("TRUE").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}

func requireRows(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
