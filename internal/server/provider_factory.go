package server

import (
	"log/slog"

	"github.com/preston-bernstein/player-records-service/internal/config"
	"github.com/preston-bernstein/player-records-service/internal/metrics"
	"github.com/preston-bernstein/player-records-service/internal/providers"
	"github.com/preston-bernstein/player-records-service/internal/store"
)

// providerChain is the assembled provider plus the cache layer when one is configured.
type providerChain struct {
	provider providers.DatasetProvider
	cache    *providers.CachedProvider
}

// providerFactory assembles the provider with shared wrappers (rate limit, retry, cache).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providerChain {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

// wrap decorates base in the order: rate limited -> retrying -> cached.
func (f providerFactory) wrap(cfg config.Config, base providers.DatasetProvider) providerChain {
	ds := cfg.Dataset
	p := base
	if ds.MinFetchInterval > 0 {
		p = providers.NewRateLimitedProvider(p, ds.MinFetchInterval, f.logger)
	}
	p = providers.NewRetryingProvider(p, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), ds.FetchAttempts, ds.FetchBackoff)
	if !ds.CacheEnabled() {
		return providerChain{provider: p}
	}
	cache := providers.NewCachedProvider(p, store.NewDatasetStore(), ds.CacheTTL, f.logger, f.metrics)
	return providerChain{provider: cache, cache: cache}
}
