package players

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/metrics"
	"github.com/preston-bernstein/player-records-service/internal/providers"
	"github.com/preston-bernstein/player-records-service/internal/query"
)

var (
	// ErrDatasetUnavailable wraps any failure to obtain the dataset.
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	// ErrRefreshUnsupported is returned when the provider cannot be forced to reload.
	ErrRefreshUnsupported = errors.New("dataset refresh not supported")
)

// Service answers player-record queries over a freshly fetched (or cached) dataset.
type Service struct {
	provider providers.DatasetProvider
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewService constructs a Service around the provider chain.
func NewService(provider providers.DatasetProvider, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Query fetches the dataset and runs req against it.
func (s *Service) Query(ctx context.Context, req query.Request) (query.Result, error) {
	start := s.now()
	logger := logging.FromContext(ctx, s.logger)

	ds, err := s.dataset(ctx)
	if err != nil {
		s.metrics.RecordQuery(req.Group.By, 0, 0, s.now().Sub(start), err)
		logging.Error(logger, "dataset fetch failed", err)
		return query.Result{}, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}

	res := query.Run(ds, req)
	if res.UnsupportedGroupBy != "" {
		s.metrics.RecordUnsupportedGroup(res.UnsupportedGroupBy)
		logging.Warn(logger, "unsupported group_by ignored", logging.FieldGroupBy, res.UnsupportedGroupBy)
	}

	elapsed := s.now().Sub(start)
	s.metrics.RecordQuery(string(res.Mode), res.Page.TotalRecords, res.Len(), elapsed, nil)
	logging.Info(logger, "player query served",
		logging.FieldRows, len(ds),
		logging.FieldCount, res.Len(),
		logging.FieldGroupBy, string(res.Mode),
		logging.FieldPage, res.Page.Page,
		logging.FieldLimit, res.Page.Limit,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return res, nil
}

// Refresh forces the provider to reload and returns the new row count.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	refresher, ok := s.provider.(providers.Refresher)
	if !ok {
		return 0, ErrRefreshUnsupported
	}
	ds, err := refresher.Refresh(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "dataset refreshed on demand", logging.FieldRows, len(ds))
	return len(ds), nil
}

func (s *Service) dataset(ctx context.Context) (players.Dataset, error) {
	if s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	return s.provider.FetchDataset(ctx)
}
