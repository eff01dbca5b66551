package tournamentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matches table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matches (
					id BIGSERIAL PRIMARY KEY,
					round INTEGER NOT NULL CHECK (round >= 1),
					slot INTEGER NOT NULL CHECK (slot >= 1),
					player1_id BIGINT REFERENCES players(id) ON DELETE SET NULL,
					player2_id BIGINT REFERENCES players(id) ON DELETE SET NULL,
					player1_score INTEGER CHECK (player1_score >= 0),
					player2_score INTEGER CHECK (player2_score >= 0),
					winner_id BIGINT REFERENCES players(id) ON DELETE SET NULL,
					status VARCHAR(10) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'DONE')),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT matches_round_slot_key UNIQUE (round, slot)
				);
				CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
			`); err != nil {
				return fmt.Errorf("failed to create matches table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping matches table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS matches;`); err != nil {
				return fmt.Errorf("failed to drop matches table: %w", err)
			}
			return nil
		})
	})
}
