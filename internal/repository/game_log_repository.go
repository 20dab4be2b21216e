package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pickscore/internal/database"
)

// GameLogRow is one mirrored game. Statistic columns are carried as text so that
// NUMERIC values round-trip exactly; nil means the column is NULL.
type GameLogRow struct {
	GameID   string
	GameDate string
	Matchup  string
	Minutes  string
	Points   *string
	Rebounds *string
	Assists  *string
}

// PostgresGameLogRepository implements GameLogRepository for PostgreSQL
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new game log repository
func NewPostgresGameLogRepository(db *database.DB) GameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// GetBySeason returns a player's games for one season in insertion-key order
func (r *PostgresGameLogRepository) GetBySeason(ctx context.Context, playerID int64, season string) ([]GameLogRow, error) {
	query := `
		SELECT game_id, game_date, matchup, minutes, pts::text, reb::text, ast::text
		FROM player_game_logs
		WHERE player_id = $1 AND season = $2
		ORDER BY game_id DESC
	`

	rows, err := r.db.Pool().Query(ctx, query, playerID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs: %w", err)
	}
	defer rows.Close()

	var logs []GameLogRow
	for rows.Next() {
		var row GameLogRow
		err := rows.Scan(&row.GameID, &row.GameDate, &row.Matchup, &row.Minutes, &row.Points, &row.Rebounds, &row.Assists)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game log: %w", err)
		}
		logs = append(logs, row)
	}

	return logs, rows.Err()
}

// UpsertBatch writes a season's games for one player in a single batch
func (r *PostgresGameLogRepository) UpsertBatch(ctx context.Context, playerID int64, season string, rows []GameLogRow) error {
	query := `
		INSERT INTO player_game_logs (player_id, season, game_id, game_date, matchup, minutes, pts, reb, ast)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9::numeric)
		ON CONFLICT (player_id, season, game_id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			matchup   = EXCLUDED.matchup,
			minutes   = EXCLUDED.minutes,
			pts       = EXCLUDED.pts,
			reb       = EXCLUDED.reb,
			ast       = EXCLUDED.ast
	`

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query, playerID, season, row.GameID, row.GameDate, row.Matchup, row.Minutes, row.Points, row.Rebounds, row.Assists)
	}

	results := r.db.Pool().SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert game log: %w", err)
		}
	}

	return nil
}
