package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/logging"
)

const defaultMinInterval = time.Minute

// rateLimitedProvider wraps a DatasetProvider and enforces a minimum interval between upstream calls.
type rateLimitedProvider struct {
	next     DatasetProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a DatasetProvider that allows one call per interval.
// The first call passes immediately; later calls block until the interval elapses or ctx ends.
func NewRateLimitedProvider(next DatasetProvider, interval time.Duration, logger *slog.Logger) DatasetProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", logging.FieldError, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch")
	return p.next.FetchDataset(ctx)
}
