package database

import (
	"context"
	"fmt"

	"github.com/yourusername/pickscore/internal/config"
)

// Schema is the layout of the read-only player mirror. Statistic columns are
// nullable so that missing box-score values reach the extractor as such.
const Schema = `
CREATE TABLE IF NOT EXISTS players (
	id         BIGINT PRIMARY KEY,
	full_name  TEXT    NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS player_game_logs (
	player_id  BIGINT  NOT NULL REFERENCES players (id),
	season     TEXT    NOT NULL,
	game_id    TEXT    NOT NULL,
	game_date  TEXT    NOT NULL,
	matchup    TEXT    NOT NULL DEFAULT '',
	minutes    TEXT    NOT NULL DEFAULT '',
	pts        NUMERIC,
	reb        NUMERIC,
	ast        NUMERIC,
	PRIMARY KEY (player_id, season, game_id)
);
`

var requiredTables = []string{"players", "player_game_logs"}

// Initialize creates a connection pool and verifies the mirror tables exist
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.VerifySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// VerifySchema checks that every mirror table is present
func (db *DB) VerifySchema(ctx context.Context) error {
	for _, table := range requiredTables {
		var exists bool
		err := db.pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s not found; load the mirror schema first", table)
		}
	}
	return nil
}

// EnsureSchema creates the mirror tables when they are missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
