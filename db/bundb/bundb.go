package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	tournamentdb "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/pingpong-bot/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const pingTimeout = 5 * time.Second

// DBService owns the connection pool and the repositories built on it.
type DBService struct {
	TournamentDB tournamentdb.Repository
	db           *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// Close closes the connection pool.
func (s *DBService) Close() error {
	return s.db.Close()
}

// NewBunDBService connects to Postgres, pings it and registers the tournament models.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.InfoContext(ctx, "Database connection established")
	return NewDBService(bun.NewDB(sqldb, pgdialect.New())), nil
}

// NewDBService wraps an open connection, e.g. one opened through pgx in tests.
func NewDBService(db *bun.DB) *DBService {
	db.RegisterModel((*tournamentdb.Player)(nil), (*tournamentdb.Match)(nil))
	return &DBService{
		TournamentDB: tournamentdb.NewRepository(db),
		db:           db,
	}
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
