package config

// DatasetConfig controls how the player dataset is fetched and cached.
type DatasetConfig struct {
	URL     string
	Timeout Duration
	// CacheTTL of zero disables caching; every query fetches a fresh dataset.
	CacheTTL        Duration
	RefreshInterval Duration
	FetchAttempts   int
	FetchBackoff    Duration
	// MinFetchInterval of zero disables the upstream limiter.
	MinFetchInterval Duration
}

// CacheEnabled reports whether datasets are kept between queries.
func (c DatasetConfig) CacheEnabled() bool {
	return c.CacheTTL > 0
}

func loadDataset() DatasetConfig {
	cfg := DatasetConfig{
		URL:              envOrDefault(envDatasetURL, defaultDatasetURL),
		Timeout:          durationEnvOrDefault(envDatasetTimeout, defaultDatasetTimeout),
		CacheTTL:         durationEnvOrDefault(envCacheTTL, 0),
		RefreshInterval:  durationEnvOrDefault(envRefreshInterval, 0),
		FetchAttempts:    intEnvOrDefault(envFetchAttempts, defaultFetchAttempts),
		FetchBackoff:     durationEnvOrDefault(envFetchBackoff, defaultFetchBackoff),
		MinFetchInterval: durationEnvOrDefault(envMinFetchInterval, 0),
	}
	if cfg.CacheEnabled() && cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = cfg.CacheTTL
	}
	return cfg
}
