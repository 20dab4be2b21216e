package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscore/internal/cache"
	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/models"
)

type fakeProvider struct {
	players     []datasource.PlayerRecord
	lookupCalls int
	listCalls   int
	err         error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) LookupPlayers(_ context.Context, query string) ([]datasource.PlayerRecord, error) {
	f.lookupCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []datasource.PlayerRecord
	for _, p := range f.players {
		if strings.EqualFold(p.FullName, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProvider) ListPlayers(context.Context) ([]datasource.PlayerRecord, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.players, nil
}

func (f *fakeProvider) GetGameLog(context.Context, int64, string) ([]datasource.GameLogRecord, error) {
	return nil, nil
}

func newTestResolver(p *fakeProvider) (*Resolver, *cache.ManualClock) {
	clock := cache.NewManualClock(time.Date(2026, 2, 25, 18, 0, 0, 0, time.UTC))
	return New(p, 30*time.Minute, logger.NewNopLogger(), cache.WithClock(clock)), clock
}

func registry() []datasource.PlayerRecord {
	return []datasource.PlayerRecord{
		{ID: 1, FullName: "Anthony Davis", IsActive: false},
		{ID: 2, FullName: "Anthony Davis", IsActive: true},
		{ID: 2544, FullName: "LeBron James", IsActive: true},
		{ID: 203999, FullName: "Nikola Jokić", IsActive: true},
		{ID: 77, FullName: "Bronny James", IsActive: true},
		{ID: 76, FullName: "Mike James", IsActive: false},
	}
}

func TestResolveExactMatch(t *testing.T) {
	r, _ := newTestResolver(&fakeProvider{players: registry()})

	identity, err := r.Resolve(context.Background(), "  lebron james ")
	require.NoError(t, err)
	assert.Equal(t, models.PlayerIdentity{ID: 2544, FullName: "LeBron James", IsActive: true}, identity)
}

func TestResolvePrefersActive(t *testing.T) {
	r, _ := newTestResolver(&fakeProvider{players: registry()})

	identity, err := r.Resolve(context.Background(), "Anthony Davis")
	require.NoError(t, err)
	assert.Equal(t, int64(2), identity.ID)
}

func TestResolveSubstringFallback(t *testing.T) {
	p := &fakeProvider{players: registry()}
	r, _ := newTestResolver(p)

	identity, err := r.Resolve(context.Background(), "Jokic")
	require.NoError(t, err)
	assert.Equal(t, int64(203999), identity.ID)
	assert.Equal(t, 1, p.listCalls)
}

func TestResolveSubstringFirstActiveInRegistryOrder(t *testing.T) {
	r, _ := newTestResolver(&fakeProvider{players: registry()})

	// LeBron, Bronny and Mike James all contain "james"; LeBron is the first active one
	identity, err := r.Resolve(context.Background(), "James")
	require.NoError(t, err)
	assert.Equal(t, int64(2544), identity.ID)
}

func TestResolveNotFound(t *testing.T) {
	r, _ := newTestResolver(&fakeProvider{players: registry()})

	_, err := r.Resolve(context.Background(), "Zzyxx Nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPlayerNotFound)

	var notFound *models.PlayerNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Zzyxx Nobody", notFound.Query)
}

func TestResolveEmptyName(t *testing.T) {
	p := &fakeProvider{players: registry()}
	r, _ := newTestResolver(p)

	_, err := r.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrPlayerNotFound)
	assert.Zero(t, p.lookupCalls)
}

func TestResolveCachesHitsUntilExpiry(t *testing.T) {
	p := &fakeProvider{players: registry()}
	r, clock := newTestResolver(p)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "LeBron James")
	require.NoError(t, err)
	_, err = r.Resolve(ctx, "lebron  JAMES")
	require.NoError(t, err)
	assert.Equal(t, 1, p.lookupCalls)

	clock.Advance(30 * time.Minute)
	_, err = r.Resolve(ctx, "LeBron James")
	require.NoError(t, err)
	assert.Equal(t, 2, p.lookupCalls)
}

func TestResolveDoesNotCacheMisses(t *testing.T) {
	p := &fakeProvider{players: registry()}
	r, _ := newTestResolver(p)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "Victor Wembanyama")
	require.Error(t, err)

	p.players = append(p.players, datasource.PlayerRecord{ID: 1641705, FullName: "Victor Wembanyama", IsActive: true})
	identity, err := r.Resolve(ctx, "Victor Wembanyama")
	require.NoError(t, err)
	assert.Equal(t, int64(1641705), identity.ID)
}

func TestResolveUpstreamError(t *testing.T) {
	upstream := datasource.NewDataSourceError("fake", datasource.ErrCodeNetworkError, "down", nil)
	r, _ := newTestResolver(&fakeProvider{err: upstream})

	_, err := r.Resolve(context.Background(), "LeBron James")
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestRefreshRegistry(t *testing.T) {
	p := &fakeProvider{players: registry()}
	r, _ := newTestResolver(p)
	ctx := context.Background()

	n, err := r.RefreshRegistry(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(registry()), n)

	_, err = r.Resolve(ctx, "Bronny")
	require.NoError(t, err)
	assert.Equal(t, 1, p.listCalls)
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, "nikola jokic", foldName("  Nikola   Jokić "))
	assert.Equal(t, "luka doncic", foldName("Luka Dončić"))
}
