package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DatasetProvider with retry/backoff behavior and records attempt metrics.
type retryingProvider struct {
	inner        DatasetProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DatasetProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) DatasetProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner DatasetProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) DatasetProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		rng: rng,
	}
}

func (r *retryingProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	schedule := &attemptSchedule{provider: r}
	op := func() (players.Dataset, error) {
		schedule.attempt++
		start := time.Now()
		ds, err := r.inner.FetchDataset(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return ds, nil
		}
		schedule.lastErr = err
		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	notify := func(err error, delay time.Duration) {
		r.logWarn(ctx, "provider fetch retry",
			logging.FieldAttempt, schedule.attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			logging.FieldError, err,
		)
	}

	ds, err := backoff.RetryNotifyWithData(op, backoff.WithContext(schedule, ctx), notify)
	if err != nil {
		r.logWarn(ctx, "provider fetch failed", "attempts", schedule.attempt, logging.FieldError, err)
		return nil, err
	}
	return ds, nil
}

// computeDelay honors Retry-After on rate limits; other errors get the base backoff with jitter in [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 1 {
		return base
	}
	half := base / 2

	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(base-half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	logWithProvider(ctx, logger, slog.LevelWarn, r.providerName, msg, args...)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.Retryable()
	}
	return true
}

// attemptSchedule adapts the provider's attempt budget and delay policy to backoff.BackOff.
type attemptSchedule struct {
	provider *retryingProvider
	attempt  int
	lastErr  error
}

func (s *attemptSchedule) NextBackOff() time.Duration {
	if s.attempt >= s.provider.maxAttempts {
		return backoff.Stop
	}
	return s.provider.computeDelay(s.lastErr, s.attempt)
}

func (s *attemptSchedule) Reset() {
	s.attempt = 0
	s.lastErr = nil
}
