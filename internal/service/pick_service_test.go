package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/features"
	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/models"
	"github.com/yourusername/pickscore/internal/scoring"
)

// MockPlayerResolver mocks the player resolver
type MockPlayerResolver struct {
	mock.Mock
}

func (m *MockPlayerResolver) Resolve(ctx context.Context, name string) (models.PlayerIdentity, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.PlayerIdentity), args.Error(1)
}

// MockGameLogFetcher mocks the game log fetcher
type MockGameLogFetcher struct {
	mock.Mock
}

func (m *MockGameLogFetcher) Fetch(ctx context.Context, playerID int64, season string, n int) ([]models.GameLogEntry, error) {
	args := m.Called(ctx, playerID, season, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameLogEntry), args.Error(1)
}

var lebron = models.PlayerIdentity{ID: 2544, FullName: "LeBron James", IsActive: true}

func referenceQuery() models.PickQuery {
	return models.PickQuery{
		PlayerName: "LeBron James",
		Stat:       models.StatPoints,
		Line:       25,
		Direction:  models.DirectionMore,
		Lookback:   10,
		Role:       models.RoleStar,
		Blowout:    models.BlowoutLow,
		Season:     "2025-26",
	}
}

func referenceGames() []models.GameLogEntry {
	points := []int64{25, 30, 22, 28, 31, 20, 26, 29, 24, 27}
	games := make([]models.GameLogEntry, len(points))
	for i, p := range points {
		games[i] = models.GameLogEntry{
			RawDate:  "FEB 25, 2026",
			Minutes:  "34",
			Points:   decimal.NewNullDecimal(decimal.NewFromInt(p)),
			Rebounds: decimal.NewNullDecimal(decimal.NewFromInt(7)),
			Assists:  decimal.NewNullDecimal(decimal.NewFromInt(8)),
		}
	}
	return games
}

func newTestService(resolver *MockPlayerResolver, fetcher *MockGameLogFetcher) *PickService {
	return NewPickService(resolver, fetcher, features.NewExtractor(), scoring.NewEngine(), logger.NewNopLogger())
}

func TestEvaluateReferenceScenario(t *testing.T) {
	resolver := new(MockPlayerResolver)
	fetcher := new(MockGameLogFetcher)
	resolver.On("Resolve", mock.Anything, "LeBron James").Return(lebron, nil)
	fetcher.On("Fetch", mock.Anything, int64(2544), "2025-26", 10).Return(referenceGames(), nil)

	eval, err := newTestService(resolver, fetcher).Evaluate(context.Background(), referenceQuery())
	require.NoError(t, err)
	require.True(t, eval.Scored())

	assert.Equal(t, models.OutcomeScored, eval.Outcome)
	assert.Equal(t, lebron, *eval.Player)
	assert.InDelta(t, 26.2, eval.Features.AvgN, 1e-9)
	assert.Equal(t, 3, eval.Features.Hits5)
	assert.InDelta(t, 87.0, eval.Result.Score, 1e-9)
	assert.InDelta(t, 62.95, eval.Result.Probability, 1e-9)
	assert.Equal(t, models.LabelGood, eval.Result.Label)
	assert.NotEqual(t, uuid.Nil, eval.QueryID)

	resolver.AssertExpectations(t)
	fetcher.AssertExpectations(t)
}

func TestEvaluateFetchesMinutesWindowForShortLookback(t *testing.T) {
	resolver := new(MockPlayerResolver)
	fetcher := new(MockGameLogFetcher)
	resolver.On("Resolve", mock.Anything, "LeBron James").Return(lebron, nil)
	fetcher.On("Fetch", mock.Anything, int64(2544), "2025-26", 10).Return(referenceGames(), nil)

	q := referenceQuery()
	q.Lookback = 5
	eval, err := newTestService(resolver, fetcher).Evaluate(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 5, eval.Features.GamesUsed)
	fetcher.AssertExpectations(t)
}

func TestEvaluatePlayerNotFoundSkipsFetcher(t *testing.T) {
	resolver := new(MockPlayerResolver)
	fetcher := new(MockGameLogFetcher)
	resolver.On("Resolve", mock.Anything, "Zzyxx Nobody").
		Return(models.PlayerIdentity{}, &models.PlayerNotFoundError{Query: "Zzyxx Nobody"})

	q := referenceQuery()
	q.PlayerName = "Zzyxx Nobody"
	eval, err := newTestService(resolver, fetcher).Evaluate(context.Background(), q)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPlayerNotFound)
	assert.Equal(t, models.OutcomePlayerNotFound, eval.Outcome)
	assert.Nil(t, eval.Result)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluateZeroGamesIsNoData(t *testing.T) {
	resolver := new(MockPlayerResolver)
	fetcher := new(MockGameLogFetcher)
	resolver.On("Resolve", mock.Anything, "LeBron James").Return(lebron, nil)
	fetcher.On("Fetch", mock.Anything, int64(2544), "2025-26", 10).Return([]models.GameLogEntry{}, nil)

	eval, err := newTestService(resolver, fetcher).Evaluate(context.Background(), referenceQuery())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeNoGameData, eval.Outcome)
	assert.False(t, eval.Scored())
	assert.Nil(t, eval.Features)
	assert.Nil(t, eval.Result)
}

func TestEvaluateUpstreamUnavailable(t *testing.T) {
	resolver := new(MockPlayerResolver)
	fetcher := new(MockGameLogFetcher)
	resolver.On("Resolve", mock.Anything, "LeBron James").Return(lebron, nil)
	fetcher.On("Fetch", mock.Anything, int64(2544), "2025-26", 10).
		Return(nil, datasource.NewDataSourceError("fake", datasource.ErrCodeRateLimitExceeded, "slow down", nil))

	eval, err := newTestService(resolver, fetcher).Evaluate(context.Background(), referenceQuery())
	require.Error(t, err)
	assert.Equal(t, models.OutcomeUpstreamUnavailable, eval.Outcome)
	assert.True(t, eval.Outcome.Retryable())
}

func TestEvaluateMalformedRecord(t *testing.T) {
	resolver := new(MockPlayerResolver)
	fetcher := new(MockGameLogFetcher)
	games := referenceGames()
	games[2].Points = decimal.NullDecimal{}
	resolver.On("Resolve", mock.Anything, "LeBron James").Return(lebron, nil)
	fetcher.On("Fetch", mock.Anything, int64(2544), "2025-26", 10).Return(games, nil)

	eval, err := newTestService(resolver, fetcher).Evaluate(context.Background(), referenceQuery())
	require.Error(t, err)
	assert.Equal(t, models.OutcomeMalformedRecord, eval.Outcome)
	assert.False(t, eval.Outcome.Retryable())
	assert.Nil(t, eval.Result)
}

func TestEvaluateInvalidQuerySkipsResolver(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *models.PickQuery)
	}{
		{"zero line", func(q *models.PickQuery) { q.Line = 0 }},
		{"blank name", func(q *models.PickQuery) { q.PlayerName = "   " }},
		{"lookback too long", func(q *models.PickQuery) { q.Lookback = 16 }},
		{"bad season", func(q *models.PickQuery) { q.Season = "2025-27" }},
		{"unknown role", func(q *models.PickQuery) { q.Role = "Suplente" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockPlayerResolver)
			fetcher := new(MockGameLogFetcher)

			q := referenceQuery()
			tt.mutate(&q)
			eval, err := newTestService(resolver, fetcher).Evaluate(context.Background(), q)

			assert.ErrorIs(t, err, models.ErrInvalidQuery)
			assert.Equal(t, models.OutcomeInvalidQuery, eval.Outcome)
			resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		})
	}
}
