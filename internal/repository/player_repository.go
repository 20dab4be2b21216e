package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/pickscore/internal/database"
	"github.com/yourusername/pickscore/internal/models"
)

const errScanPlayer = "failed to scan player: %w"

// PostgresPlayerRepository implements PlayerRepository for PostgreSQL
type PostgresPlayerRepository struct {
	db *database.DB
}

// NewPostgresPlayerRepository creates a new player repository
func NewPostgresPlayerRepository(db *database.DB) PlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// FindByName returns players whose full name equals fullName ignoring case
func (r *PostgresPlayerRepository) FindByName(ctx context.Context, fullName string) ([]models.PlayerIdentity, error) {
	query := `
		SELECT id, full_name, is_active
		FROM players
		WHERE lower(full_name) = lower($1)
		ORDER BY id ASC
	`
	return r.queryPlayers(ctx, query, fullName)
}

// List returns the whole registry in id order
func (r *PostgresPlayerRepository) List(ctx context.Context) ([]models.PlayerIdentity, error) {
	query := `
		SELECT id, full_name, is_active
		FROM players
		ORDER BY id ASC
	`
	return r.queryPlayers(ctx, query)
}

// Upsert inserts or updates a player
func (r *PostgresPlayerRepository) Upsert(ctx context.Context, player models.PlayerIdentity) error {
	query := `
		INSERT INTO players (id, full_name, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, is_active = EXCLUDED.is_active
	`

	if _, err := r.db.Pool().Exec(ctx, query, player.ID, player.FullName, player.IsActive); err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

func (r *PostgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]models.PlayerIdentity, error) {
	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []models.PlayerIdentity
	for rows.Next() {
		var p models.PlayerIdentity
		if err := rows.Scan(&p.ID, &p.FullName, &p.IsActive); err != nil {
			return nil, fmt.Errorf(errScanPlayer, err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}
