// Package gamelog fetches and orders a player's season game log.
package gamelog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscore/internal/cache"
	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/models"
)

// Fetcher returns a player's most recent games for a season. The full season,
// sorted most recent first, is cached per player and season.
type Fetcher struct {
	provider datasource.Provider
	seasons  *cache.TTLCache[[]models.GameLogEntry]
	timeout  time.Duration
	logger   *logger.UpstreamLogger
}

// NewFetcher creates a fetcher whose cache lives for ttl. A positive timeout bounds
// each upstream call.
func NewFetcher(provider datasource.Provider, ttl, timeout time.Duration, log *logrus.Logger, opts ...cache.Option) *Fetcher {
	return &Fetcher{
		provider: provider,
		seasons:  cache.New[[]models.GameLogEntry]("game_log", ttl, opts...),
		timeout:  timeout,
		logger:   logger.NewUpstreamLogger(log, provider.Name()),
	}
}

// Fetch returns up to n of the player's most recent games in the season, sorted by
// date descending. An empty slice means the player has no games in the season.
func (f *Fetcher) Fetch(ctx context.Context, playerID int64, season string, n int) ([]models.GameLogEntry, error) {
	if n <= 0 {
		return nil, &models.ValidationError{Fields: map[string]string{"n": "must be positive"}}
	}

	key := strconv.FormatInt(playerID, 10) + ":" + season
	games, err := f.seasons.GetOrLoad(ctx, key, func(ctx context.Context) ([]models.GameLogEntry, error) {
		return f.load(ctx, playerID, season)
	})
	if err != nil {
		return nil, err
	}

	if len(games) > n {
		games = games[:n]
	}
	out := make([]models.GameLogEntry, len(games))
	copy(out, games)
	return out, nil
}

// Invalidate drops the cached season for a player
func (f *Fetcher) Invalidate(playerID int64, season string) {
	f.seasons.Delete(strconv.FormatInt(playerID, 10) + ":" + season)
}

type loadResult struct {
	records []datasource.GameLogRecord
	err     error
}

func (f *Fetcher) load(ctx context.Context, playerID int64, season string) ([]models.GameLogEntry, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	done := make(chan loadResult, 1)
	go func() {
		records, err := f.provider.GetGameLog(ctx, playerID, season)
		done <- loadResult{records: records, err: err}
	}()

	var res loadResult
	select {
	case res = <-done:
	case <-ctx.Done():
		// The provider may not honour cancellation; stop waiting for it
		res = loadResult{err: ctx.Err()}
	}

	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) && !errors.Is(res.err, models.ErrUpstreamUnavailable) {
			if f.timeout > 0 {
				return nil, fmt.Errorf("%w: game log fetch exceeded %s: %v", models.ErrUpstreamUnavailable, f.timeout, res.err)
			}
			return nil, fmt.Errorf("%w: game log fetch deadline exceeded: %v", models.ErrUpstreamUnavailable, res.err)
		}
		return nil, res.err
	}

	entries := make([]models.GameLogEntry, 0, len(res.records))
	for _, rec := range res.records {
		date, ok := ParseGameDate(rec.GameDate)
		if !ok {
			f.logger.LogUnparsedDate(playerID, rec.GameDate)
		}
		entries = append(entries, models.GameLogEntry{
			GameID:   rec.GameID,
			Date:     date,
			RawDate:  rec.GameDate,
			Matchup:  rec.Matchup,
			Minutes:  rec.Minutes,
			Points:   rec.Points,
			Rebounds: rec.Rebounds,
			Assists:  rec.Assists,
			Extra:    rec.Extra,
		})
	}

	SortByDateDesc(entries)
	return entries, nil
}

// SortByDateDesc orders games most recent first. Games without a parsed date sort
// last and keep their relative order.
func SortByDateDesc(games []models.GameLogEntry) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i], games[j]
		switch {
		case a.HasDate() && b.HasDate():
			return a.Date.After(b.Date)
		case a.HasDate():
			return true
		default:
			return false
		}
	})
}
