package gamelog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscore/internal/cache"
	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/models"
)

type fakeProvider struct {
	mu    sync.Mutex
	logs  map[string][]datasource.GameLogRecord
	calls int
	block chan struct{}
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) LookupPlayers(context.Context, string) ([]datasource.PlayerRecord, error) {
	return nil, nil
}

func (f *fakeProvider) ListPlayers(context.Context) ([]datasource.PlayerRecord, error) {
	return nil, nil
}

func (f *fakeProvider) GetGameLog(_ context.Context, playerID int64, season string) ([]datasource.GameLogRecord, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.logs[season], nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func game(date string, pts int64) datasource.GameLogRecord {
	return datasource.GameLogRecord{
		GameID:   date,
		GameDate: date,
		Minutes:  "32",
		Points:   decimal.NewNullDecimal(decimal.NewFromInt(pts)),
		Rebounds: decimal.NewNullDecimal(decimal.NewFromInt(5)),
		Assists:  decimal.NewNullDecimal(decimal.NewFromInt(5)),
	}
}

func newTestFetcher(p *fakeProvider, timeout time.Duration) (*Fetcher, *cache.ManualClock) {
	clock := cache.NewManualClock(time.Date(2026, 2, 26, 9, 0, 0, 0, time.UTC))
	return NewFetcher(p, 5*time.Minute, timeout, logger.NewNopLogger(), cache.WithClock(clock)), clock
}

func TestFetchSortsAndTruncates(t *testing.T) {
	p := &fakeProvider{logs: map[string][]datasource.GameLogRecord{
		"2025-26": {
			game("FEB 20, 2026", 20),
			game("not a date", 99),
			game("FEB 25, 2026", 25),
			game("Feb 22, 2026", 22),
			game("2026-02-24", 24),
		},
	}}
	f, _ := newTestFetcher(p, time.Second)

	games, err := f.Fetch(context.Background(), 2544, "2025-26", 3)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "FEB 25, 2026", games[0].RawDate)
	assert.Equal(t, "2026-02-24", games[1].RawDate)
	assert.Equal(t, "Feb 22, 2026", games[2].RawDate)

	all, err := f.Fetch(context.Background(), 2544, "2025-26", 10)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "not a date", all[4].RawDate)
	assert.False(t, all[4].HasDate())
}

func TestFetchEmptySeason(t *testing.T) {
	f, _ := newTestFetcher(&fakeProvider{}, time.Second)

	games, err := f.Fetch(context.Background(), 2544, "2019-20", 10)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestFetchCachesPerPlayerSeason(t *testing.T) {
	p := &fakeProvider{logs: map[string][]datasource.GameLogRecord{
		"2025-26": {game("FEB 25, 2026", 25)},
	}}
	f, clock := newTestFetcher(p, time.Second)
	ctx := context.Background()

	_, err := f.Fetch(ctx, 2544, "2025-26", 5)
	require.NoError(t, err)
	_, err = f.Fetch(ctx, 2544, "2025-26", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, p.callCount())

	_, err = f.Fetch(ctx, 2544, "2024-25", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, p.callCount())

	clock.Advance(5 * time.Minute)
	_, err = f.Fetch(ctx, 2544, "2025-26", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, p.callCount())

	f.Invalidate(2544, "2025-26")
	_, err = f.Fetch(ctx, 2544, "2025-26", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, p.callCount())
}

func TestFetchReturnsCopy(t *testing.T) {
	p := &fakeProvider{logs: map[string][]datasource.GameLogRecord{
		"2025-26": {game("FEB 25, 2026", 25), game("FEB 23, 2026", 23)},
	}}
	f, _ := newTestFetcher(p, time.Second)
	ctx := context.Background()

	first, err := f.Fetch(ctx, 1, "2025-26", 2)
	require.NoError(t, err)
	first[0].RawDate = "mutated"

	second, err := f.Fetch(ctx, 1, "2025-26", 2)
	require.NoError(t, err)
	assert.Equal(t, "FEB 25, 2026", second[0].RawDate)
}

func TestFetchUpstreamErrorNotCached(t *testing.T) {
	p := &fakeProvider{err: datasource.NewDataSourceError("fake", datasource.ErrCodeRateLimitExceeded, "slow down", nil)}
	f, _ := newTestFetcher(p, time.Second)
	ctx := context.Background()

	_, err := f.Fetch(ctx, 1, "2025-26", 5)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)

	_, err = f.Fetch(ctx, 1, "2025-26", 5)
	assert.Error(t, err)
	assert.Equal(t, 2, p.callCount())
}

func TestFetchTimeoutIsUpstreamUnavailable(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	f, _ := newTestFetcher(&fakeProvider{block: block}, 20*time.Millisecond)

	_, err := f.Fetch(context.Background(), 1, "2025-26", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestFetchTimeoutMessageNamesConfiguredTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	f, _ := newTestFetcher(&fakeProvider{block: block}, 20*time.Millisecond)

	_, err := f.Fetch(context.Background(), 1, "2025-26", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded 20ms")
}

func TestFetchCallerDeadlineWithoutConfiguredTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	f, _ := newTestFetcher(&fakeProvider{block: block}, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, 1, "2025-26", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.NotContains(t, err.Error(), "0s")
}

func TestFetchRejectsNonPositiveCount(t *testing.T) {
	f, _ := newTestFetcher(&fakeProvider{}, time.Second)

	_, err := f.Fetch(context.Background(), 1, "2025-26", 0)
	assert.ErrorIs(t, err, models.ErrInvalidQuery)
}
