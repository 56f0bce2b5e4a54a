package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type queryStats struct {
	queries     int
	failures    int
	unsupported int
	cacheHits   int
	cacheMisses int
	refreshes   int
	refreshErrs int
}

// Recorder captures in-memory counters for providers and queries and forwards
// every observation to OpenTelemetry instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	query queryStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordQuery tracks one engine run: its grouping mode, how many records matched
// before pagination, how many were returned and how long it took.
func (r *Recorder) RecordQuery(mode string, total, returned int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.query.queries++
	if err != nil {
		r.query.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuery(mode, total, returned, duration, err)
	}
}

// RecordUnsupportedGroup counts group_by selectors that were ignored.
func (r *Recorder) RecordUnsupportedGroup(selector string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.query.unsupported++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUnsupportedGroup(selector)
	}
}

// RecordCacheLookup counts a dataset cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.query.cacheHits++
	} else {
		r.query.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(hit)
	}
}

// RecordRefreshCycle tracks background dataset refreshes and their errors.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.query.refreshes++
	if err != nil {
		r.query.refreshErrs++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// QuerySnapshot is a copy of the query, cache and refresh counters.
type QuerySnapshot struct {
	Queries          int
	Failures         int
	UnsupportedGroup int
	CacheHits        int
	CacheMisses      int
	Refreshes        int
	RefreshErrors    int
}

func (r *Recorder) QuerySnapshot() QuerySnapshot {
	if r == nil {
		return QuerySnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return QuerySnapshot{
		Queries:          r.query.queries,
		Failures:         r.query.failures,
		UnsupportedGroup: r.query.unsupported,
		CacheHits:        r.query.cacheHits,
		CacheMisses:      r.query.cacheMisses,
		Refreshes:        r.query.refreshes,
		RefreshErrors:    r.query.refreshErrs,
	}
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
