package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/metrics"
	"github.com/preston-bernstein/player-records-service/internal/providers"
)

const (
	defaultInterval = 30 * time.Second
	maxFailures     = 3
)

// Poller reloads the cached dataset on an interval so queries rarely wait on upstream.
type Poller struct {
	refresher providers.Refresher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether a refresh has succeeded and the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Poller with sane defaults.
func New(refresher providers.Refresher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresher: refresher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("dataset refresher started", "interval_ms", p.interval.Milliseconds())
		// warm the cache on boot
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("dataset refresher stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("dataset refresher stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	ds, err := p.refresher.Refresh(ctx)
	elapsed := p.now().Sub(start)
	p.metrics.RecordRefreshCycle(elapsed, err)
	if err != nil {
		p.logError("dataset refresh failed", err, slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start)
	p.logInfo("dataset refreshed",
		logging.FieldRows, len(ds),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	logging.Error(p.logger, msg, err, attrs...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
