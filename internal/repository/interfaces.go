package repository

import (
	"context"

	"github.com/yourusername/pickscore/internal/models"
)

// PlayerRepository defines the interface for the player registry mirror
type PlayerRepository interface {
	FindByName(ctx context.Context, fullName string) ([]models.PlayerIdentity, error)
	List(ctx context.Context) ([]models.PlayerIdentity, error)
	Upsert(ctx context.Context, player models.PlayerIdentity) error
}

// GameLogRepository defines the interface for mirrored game logs
type GameLogRepository interface {
	GetBySeason(ctx context.Context, playerID int64, season string) ([]GameLogRow, error)
	UpsertBatch(ctx context.Context, playerID int64, season string, rows []GameLogRow) error
}
