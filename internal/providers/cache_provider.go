package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/metrics"
	"github.com/preston-bernstein/player-records-service/internal/store"
)

const cacheKey = "dataset"

// CachedProvider serves the last fetched dataset for up to ttl and collapses concurrent
// misses into a single upstream fetch. A ttl <= 0 disables caching: every call goes upstream.
type CachedProvider struct {
	next     DatasetProvider
	store    *store.DatasetStore
	ttl      time.Duration
	logger   *slog.Logger
	recorder *metrics.Recorder
	group    singleflight.Group
	now      func() time.Time
}

// NewCachedProvider wraps next with a cache backed by st. A nil st gets a fresh store.
func NewCachedProvider(next DatasetProvider, st *store.DatasetStore, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *CachedProvider {
	if st == nil {
		st = store.NewDatasetStore()
	}
	return &CachedProvider{
		next:     next,
		store:    st,
		ttl:      ttl,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

// Enabled reports whether datasets are kept between calls.
func (c *CachedProvider) Enabled() bool {
	return c.ttl > 0
}

// FetchDataset returns the cached dataset while it is fresh, otherwise reloads it.
func (c *CachedProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	if c.next == nil {
		return nil, ErrProviderUnavailable
	}
	if !c.Enabled() {
		return c.next.FetchDataset(ctx)
	}

	if ds, fetchedAt, ok := c.store.Get(); ok && c.now().Sub(fetchedAt) < c.ttl {
		c.recorder.RecordCacheLookup(true)
		logging.Debug(c.logger, "dataset cache hit", logging.FieldRows, len(ds))
		return ds, nil
	}
	c.recorder.RecordCacheLookup(false)
	return c.load(ctx)
}

// Refresh reloads the dataset from upstream regardless of freshness.
func (c *CachedProvider) Refresh(ctx context.Context) (players.Dataset, error) {
	if c.next == nil {
		return nil, ErrProviderUnavailable
	}
	return c.load(ctx)
}

func (c *CachedProvider) load(ctx context.Context) (players.Dataset, error) {
	// the fetch is shared by every waiter, so one caller going away must not cancel it
	fetchCtx := context.WithoutCancel(ctx)

	v, err, shared := c.group.Do(cacheKey, func() (any, error) {
		start := c.now()
		ds, err := c.next.FetchDataset(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store.Set(ds, c.now())
		logging.Info(c.logger, "dataset cached",
			logging.FieldRows, len(ds),
			logging.FieldDurationMS, c.now().Sub(start).Milliseconds(),
		)
		return ds, nil
	})
	if err != nil {
		logging.Warn(c.logger, "dataset load failed", logging.FieldError, err, "shared", shared)
		return nil, err
	}
	return v.(players.Dataset), nil
}
