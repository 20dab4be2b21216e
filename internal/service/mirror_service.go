package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/models"
	"github.com/yourusername/pickscore/internal/repository"
)

// MirrorService copies players and game logs from an upstream provider into the
// Postgres mirror read by the postgres provider
type MirrorService struct {
	source  datasource.Provider
	players repository.PlayerRepository
	games   repository.GameLogRepository
	logger  *logrus.Entry
}

// NewMirrorService creates a mirror writer over the given repositories
func NewMirrorService(source datasource.Provider, repos *repository.Repositories, log *logrus.Logger) *MirrorService {
	return &MirrorService{
		source:  source,
		players: repos.Player,
		games:   repos.GameLog,
		logger:  log.WithField("component", "mirror"),
	}
}

// SyncRegistry upserts every player the source knows and returns how many were written
func (s *MirrorService) SyncRegistry(ctx context.Context) (int, error) {
	start := time.Now()

	records, err := s.source.ListPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list players from %s: %w", s.source.Name(), err)
	}

	for i, rec := range records {
		if err := s.players.Upsert(ctx, rec.Identity()); err != nil {
			return i, fmt.Errorf("failed to mirror player %d: %w", rec.ID, err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"players":     len(records),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Mirrored player registry")
	return len(records), nil
}

// SyncGameLog mirrors one player's season and returns how many games were written.
// Records without a game id are skipped because they cannot be keyed.
func (s *MirrorService) SyncGameLog(ctx context.Context, player models.PlayerIdentity, season string) (int, error) {
	if !models.ValidSeason(season) {
		return 0, &models.ValidationError{Fields: map[string]string{"season": "must look like 2025-26"}}
	}

	records, err := s.source.GetGameLog(ctx, player.ID, season)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch game log for player %d: %w", player.ID, err)
	}

	if err := s.players.Upsert(ctx, player); err != nil {
		return 0, fmt.Errorf("failed to mirror player %d: %w", player.ID, err)
	}

	rows := make([]repository.GameLogRow, 0, len(records))
	for _, rec := range records {
		if rec.GameID == "" {
			s.logger.WithFields(logrus.Fields{
				"player_id": player.ID,
				"game_date": rec.GameDate,
			}).Warn("Skipping game without id")
			continue
		}
		rows = append(rows, datasource.ToGameLogRow(rec))
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if err := s.games.UpsertBatch(ctx, player.ID, season, rows); err != nil {
		return 0, fmt.Errorf("failed to mirror game log for player %d: %w", player.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"player_id": player.ID,
		"season":    season,
		"games":     len(rows),
	}).Info("Mirrored game log")
	return len(rows), nil
}
