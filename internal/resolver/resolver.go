// Package resolver maps free-text player names onto canonical player identities.
package resolver

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/yourusername/pickscore/internal/cache"
	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/metrics"
	"github.com/yourusername/pickscore/internal/models"
)

const registryKey = "registry"

// Resolver looks a name up against the provider, falling back to a substring
// match over the full registry. Successful lookups are cached per name.
type Resolver struct {
	provider datasource.Provider
	players  *cache.TTLCache[models.PlayerIdentity]
	registry *cache.TTLCache[[]datasource.PlayerRecord]
	logger   *logrus.Entry
}

// New creates a resolver whose caches live for ttl
func New(provider datasource.Provider, ttl time.Duration, log *logrus.Logger, opts ...cache.Option) *Resolver {
	return &Resolver{
		provider: provider,
		players:  cache.New[models.PlayerIdentity]("player_resolver", ttl, opts...),
		registry: cache.New[[]datasource.PlayerRecord]("player_registry", ttl, opts...),
		logger:   log.WithField("component", "resolver"),
	}
}

// Resolve returns the identity for name, or a *models.PlayerNotFoundError
func (r *Resolver) Resolve(ctx context.Context, name string) (models.PlayerIdentity, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return models.PlayerIdentity{}, &models.PlayerNotFoundError{Query: name}
	}

	key := cacheKey(query)
	if identity, ok := r.players.Get(ctx, key); ok {
		return identity, nil
	}

	identity, found, err := r.lookup(ctx, query)
	if err != nil {
		return models.PlayerIdentity{}, err
	}
	if !found {
		// Misses are not cached so a newly added player resolves on the next query
		return models.PlayerIdentity{}, &models.PlayerNotFoundError{Query: query}
	}

	r.players.Set(ctx, key, identity)
	return identity, nil
}

// RefreshRegistry reloads the known-players registry and returns its size
func (r *Resolver) RefreshRegistry(ctx context.Context) (int, error) {
	records, err := r.provider.ListPlayers(ctx)
	metrics.RecordRegistryRefresh(err)
	if err != nil {
		return 0, err
	}

	r.registry.Set(ctx, registryKey, records)
	r.logger.WithField("players", len(records)).Info("Player registry refreshed")
	return len(records), nil
}

func (r *Resolver) lookup(ctx context.Context, query string) (models.PlayerIdentity, bool, error) {
	exact, err := r.provider.LookupPlayers(ctx, query)
	if err != nil {
		return models.PlayerIdentity{}, false, err
	}
	if best, ok := pickBest(exact); ok {
		return best.Identity(), true, nil
	}

	registry, err := r.registry.GetOrLoad(ctx, registryKey, r.provider.ListPlayers)
	if err != nil {
		return models.PlayerIdentity{}, false, err
	}

	needle := foldName(query)
	var matches []datasource.PlayerRecord
	for _, p := range registry {
		if strings.Contains(foldName(p.FullName), needle) {
			matches = append(matches, p)
		}
	}

	best, ok := pickBest(matches)
	if ok {
		r.logger.WithFields(logrus.Fields{
			"query":     query,
			"matches":   len(matches),
			"player_id": best.ID,
			"full_name": best.FullName,
		}).Debug("Resolved player by substring")
	}
	return best.Identity(), ok, nil
}

// pickBest returns the first active candidate, or the first candidate when none is active
func pickBest(candidates []datasource.PlayerRecord) (datasource.PlayerRecord, bool) {
	if len(candidates) == 0 {
		return datasource.PlayerRecord{}, false
	}
	for _, c := range candidates {
		if c.IsActive {
			return c, true
		}
	}
	return candidates[0], true
}

func cacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// foldName lower-cases s, strips diacritics and collapses whitespace
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return cacheKey(folded)
}
