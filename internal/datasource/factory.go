package datasource

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscore/internal/config"
	"github.com/yourusername/pickscore/internal/database"
	"github.com/yourusername/pickscore/internal/logger"
)

// Factory creates Provider implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new provider factory
func NewFactory(cfg *config.Config, log *logrus.Logger) *Factory {
	return &Factory{
		logger: log,
		config: cfg,
	}
}

// NewProvider creates the configured provider. The returned closer releases its
// connections and is never nil.
func (f *Factory) NewProvider(ctx context.Context) (Provider, func(), error) {
	switch f.config.Provider.Type {
	case config.ProviderHTTP:
		provider, closer := f.NewHTTPProvider()
		return provider, closer, nil

	case config.ProviderPostgres:
		db, err := database.Initialize(ctx, f.config)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to open player mirror: %w", err)
		}
		provider, err := NewPostgresProvider(db)
		if err != nil {
			db.Close()
			return nil, func() {}, err
		}
		f.logger.WithField("host", f.config.Database.Host).Info("Created Postgres mirror provider")
		return provider, db.Close, nil

	default:
		return nil, func() {}, fmt.Errorf("unknown provider type: %s", f.config.Provider.Type)
	}
}

// NewHTTPProvider creates the stats API provider regardless of the configured
// provider type. The mirror command reads from it to fill Postgres.
func (f *Factory) NewHTTPProvider() (*HTTPProvider, func()) {
	upstreamLog := logger.NewUpstreamLogger(f.logger, httpProviderName)
	client := NewRateLimitedHTTPClient(f.httpClientConfig(), upstreamLog)
	provider := NewHTTPProvider(client, f.config.Provider.BaseURL, f.config.Provider.APIKey, f.config.Provider.UserAgent, upstreamLog)
	f.logger.WithField("base_url", f.config.Provider.BaseURL).Info("Created HTTP stats provider")
	return provider, func() { _ = client.Close() }
}

func (f *Factory) httpClientConfig() HTTPClientConfig {
	p := f.config.Provider
	cfg := DefaultHTTPClientConfig()
	cfg.Timeout = f.config.ProviderTimeout()
	cfg.MaxRetries = p.MaxRetries
	if p.RetryWaitMinMs > 0 {
		cfg.RetryWaitMin = msToDuration(p.RetryWaitMinMs)
	}
	if p.RetryWaitMaxMs > 0 {
		cfg.RetryWaitMax = msToDuration(p.RetryWaitMaxMs)
	}
	cfg.RateLimit = p.RateLimit
	cfg.CircuitBreakerMax = p.CircuitBreakerMax
	cfg.CircuitCooldown = secondsToDuration(p.CircuitBreakerCooldownSeconds)
	return cfg
}
