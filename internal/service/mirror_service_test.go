package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/models"
	"github.com/yourusername/pickscore/internal/repository"
)

// MockProvider mocks the upstream provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) LookupPlayers(ctx context.Context, query string) ([]datasource.PlayerRecord, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]datasource.PlayerRecord), args.Error(1)
}

func (m *MockProvider) ListPlayers(ctx context.Context) ([]datasource.PlayerRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]datasource.PlayerRecord), args.Error(1)
}

func (m *MockProvider) GetGameLog(ctx context.Context, playerID int64, season string) ([]datasource.GameLogRecord, error) {
	args := m.Called(ctx, playerID, season)
	return args.Get(0).([]datasource.GameLogRecord), args.Error(1)
}

func (m *MockProvider) Name() string { return "mock" }

// MockPlayerRepository mocks the player mirror table
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) FindByName(ctx context.Context, fullName string) ([]models.PlayerIdentity, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).([]models.PlayerIdentity), args.Error(1)
}

func (m *MockPlayerRepository) List(ctx context.Context) ([]models.PlayerIdentity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PlayerIdentity), args.Error(1)
}

func (m *MockPlayerRepository) Upsert(ctx context.Context, player models.PlayerIdentity) error {
	return m.Called(ctx, player).Error(0)
}

// MockGameLogRepository mocks the game log mirror table
type MockGameLogRepository struct {
	mock.Mock
}

func (m *MockGameLogRepository) GetBySeason(ctx context.Context, playerID int64, season string) ([]repository.GameLogRow, error) {
	args := m.Called(ctx, playerID, season)
	return args.Get(0).([]repository.GameLogRow), args.Error(1)
}

func (m *MockGameLogRepository) UpsertBatch(ctx context.Context, playerID int64, season string, rows []repository.GameLogRow) error {
	return m.Called(ctx, playerID, season, rows).Error(0)
}

func newMirror() (*MirrorService, *MockProvider, *MockPlayerRepository, *MockGameLogRepository) {
	source := new(MockProvider)
	players := new(MockPlayerRepository)
	games := new(MockGameLogRepository)
	repos := &repository.Repositories{Player: players, GameLog: games}
	return NewMirrorService(source, repos, logger.NewNopLogger()), source, players, games
}

var jokic = models.PlayerIdentity{ID: 203999, FullName: "Nikola Jokić", IsActive: true}

func TestMirrorSyncRegistry(t *testing.T) {
	svc, source, players, _ := newMirror()
	ctx := context.Background()

	source.On("ListPlayers", ctx).Return([]datasource.PlayerRecord{
		{ID: 203999, FullName: "Nikola Jokić", IsActive: true},
		{ID: 2544, FullName: "LeBron James", IsActive: true},
	}, nil)
	players.On("Upsert", ctx, mock.AnythingOfType("models.PlayerIdentity")).Return(nil)

	n, err := svc.SyncRegistry(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	players.AssertNumberOfCalls(t, "Upsert", 2)
}

func TestMirrorSyncRegistryUpstreamError(t *testing.T) {
	svc, source, players, _ := newMirror()
	ctx := context.Background()

	source.On("ListPlayers", ctx).Return([]datasource.PlayerRecord(nil), models.ErrUpstreamUnavailable)

	_, err := svc.SyncRegistry(ctx)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	players.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestMirrorSyncGameLog(t *testing.T) {
	svc, source, players, games := newMirror()
	ctx := context.Background()

	source.On("GetGameLog", ctx, int64(203999), "2025-26").Return([]datasource.GameLogRecord{
		{GameID: "0022500812", GameDate: "FEB 25, 2026", Minutes: "36", Points: decimal.NewNullDecimal(decimal.NewFromInt(31))},
		{GameID: "", GameDate: "FEB 23, 2026", Minutes: "34"},
	}, nil)
	players.On("Upsert", ctx, jokic).Return(nil)
	games.On("UpsertBatch", ctx, int64(203999), "2025-26", mock.MatchedBy(func(rows []repository.GameLogRow) bool {
		return len(rows) == 1 && rows[0].GameID == "0022500812" && *rows[0].Points == "31" && rows[0].Rebounds == nil
	})).Return(nil)

	n, err := svc.SyncGameLog(ctx, jokic, "2025-26")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	games.AssertExpectations(t)
}

func TestMirrorSyncGameLogEmptySeason(t *testing.T) {
	svc, source, players, games := newMirror()
	ctx := context.Background()

	source.On("GetGameLog", ctx, int64(203999), "2025-26").Return([]datasource.GameLogRecord{}, nil)
	players.On("Upsert", ctx, jokic).Return(nil)

	n, err := svc.SyncGameLog(ctx, jokic, "2025-26")
	require.NoError(t, err)
	assert.Zero(t, n)
	games.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMirrorSyncGameLogWriteError(t *testing.T) {
	svc, source, players, games := newMirror()
	ctx := context.Background()
	boom := errors.New("connection reset")

	source.On("GetGameLog", ctx, int64(203999), "2025-26").Return([]datasource.GameLogRecord{{GameID: "1"}}, nil)
	players.On("Upsert", ctx, jokic).Return(nil)
	games.On("UpsertBatch", ctx, int64(203999), "2025-26", mock.Anything).Return(boom)

	_, err := svc.SyncGameLog(ctx, jokic, "2025-26")
	assert.ErrorIs(t, err, boom)
}

func TestMirrorSyncGameLogRejectsBadSeason(t *testing.T) {
	svc, source, _, _ := newMirror()

	_, err := svc.SyncGameLog(context.Background(), jokic, "2025")
	assert.ErrorIs(t, err, models.ErrInvalidQuery)
	source.AssertNotCalled(t, "GetGameLog", mock.Anything, mock.Anything, mock.Anything)
}
