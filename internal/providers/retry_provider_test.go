package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/metrics"
	"github.com/preston-bernstein/player-records-service/internal/teststubs"
)

func okDataset() players.Dataset {
	return players.Dataset{{FirstName: players.String("ok")}}
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	boom := errors.New("boom")
	fp := &teststubs.SequenceProvider{Dataset: okDataset(), Errs: []error{boom, boom}}
	rp := NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	ds, err := rp.FetchDataset(context.Background())
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(ds) != 1 || *ds[0].FirstName != "ok" {
		t.Fatalf("unexpected dataset %+v", ds)
	}
	if fp.Calls() != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.Calls())
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	boom := errors.New("boom")
	fp := &teststubs.SequenceProvider{Errs: []error{boom, boom, boom, boom, boom}}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond)

	_, err := rp.FetchDataset(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected last error after retries, got %v", err)
	}
	if fp.Calls() != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.Calls())
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	boom := errors.New("boom")
	fp := &teststubs.SequenceProvider{Errs: []error{boom, boom, boom}}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchDataset(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if fp.Calls() != 1 {
		t.Fatalf("expected no retry after cancel, got %d calls", fp.Calls())
	}
}

func TestRetryingProviderDoesNotRetryPermanentStatus(t *testing.T) {
	notFound := &StatusError{Provider: "csv", StatusCode: 404}
	fp := &teststubs.SequenceProvider{Errs: []error{notFound, notFound}}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "csv", 3, time.Millisecond)

	_, err := rp.FetchDataset(context.Background())
	if statusErr, ok := AsStatusError(err); !ok || statusErr.StatusCode != 404 {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	if fp.Calls() != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.Calls())
	}
}

func TestRetryingProviderRetriesServerErrors(t *testing.T) {
	unavailable := &StatusError{Provider: "csv", StatusCode: 503}
	fp := &teststubs.SequenceProvider{Dataset: okDataset(), Errs: []error{unavailable}}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "csv", 3, time.Millisecond)

	if _, err := rp.FetchDataset(context.Background()); err != nil {
		t.Fatalf("expected success after 503, got %v", err)
	}
	if fp.Calls() != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.Calls())
	}
}

func TestRetryingProviderUsesCustomBackoff(t *testing.T) {
	fp := &teststubs.SequenceProvider{Dataset: okDataset(), Errs: []error{errors.New("boom")}}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Hour).(*retryingProvider)

	calls := 0
	rp.backoffFn = func(attempt int) time.Duration {
		calls++
		return 0
	}

	_, _ = rp.FetchDataset(context.Background())

	if calls == 0 {
		t.Fatalf("expected custom backoff to be invoked")
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &teststubs.SequenceProvider{
		Dataset: okDataset(),
		Errs:    []error{&RateLimitError{Provider: "test", StatusCode: 429}},
	}
	rp := NewRetryingProvider(fp, nil, rec, "rl", 2, time.Millisecond).(*retryingProvider)
	rp.backoffFn = func(attempt int) time.Duration {
		_ = attempt
		return 0 // avoid sleep in tests
	}

	ds, err := rp.FetchDataset(context.Background())
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("unexpected dataset %+v", ds)
	}

	if got := rec.RateLimitHits(rp.providerName); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls(rp.providerName); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors(rp.providerName); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestRetryingProviderDelaySelection(t *testing.T) {
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(&teststubs.StubProvider{}, nil, rec, "rl", 2, time.Millisecond).(*retryingProvider)
	rp.rng = rand.New(rand.NewSource(1))
	rp.backoffFn = func(attempt int) time.Duration {
		_ = attempt
		return 50 * time.Millisecond
	}

	tests := []struct {
		name     string
		err      error
		expected time.Duration
	}{
		{
			name:     "rate_limit_uses_retry_after",
			err:      &RateLimitError{RetryAfter: 3 * time.Second},
			expected: 3 * time.Second,
		},
		{
			name:     "generic_error_uses_backoff_with_jitter",
			err:      errors.New("boom"),
			expected: 0, // non-zero but best-effort check >= base/2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay := rp.computeDelay(tt.err, 1)
			if rlErr, ok := tt.err.(*RateLimitError); ok && rlErr.RetryAfter > 0 {
				if delay != tt.expected {
					t.Fatalf("expected retry-after delay %s, got %s", tt.expected, delay)
				}
				return
			}

			if delay < 25*time.Millisecond || delay > 50*time.Millisecond {
				t.Fatalf("expected jittered delay between 25ms and 50ms, got %s", delay)
			}
		})
	}
}

func TestNewRetryingProviderWithRNG(t *testing.T) {
	fp := &teststubs.SequenceProvider{Dataset: okDataset(), Errs: []error{errors.New("boom")}}
	rng := rand.New(rand.NewSource(2))
	rp := NewRetryingProviderWithRNG(fp, nil, metrics.NewRecorder(), "flakey", rng, 2, time.Millisecond)

	ds, err := rp.FetchDataset(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("expected dataset from provider")
	}
}

func TestNewRetryingProviderWithNilProviderSetsFallbackName(t *testing.T) {
	rp := NewRetryingProviderWithRNG(nil, nil, metrics.NewRecorder(), "", nil, 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	if rp.backoffFn(1) != defaultBackoff {
		t.Fatalf("expected default backoff")
	}
	if _, err := rp.FetchDataset(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
