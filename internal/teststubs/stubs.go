package teststubs

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// StubProvider is a test double for providers.DatasetProvider.
type StubProvider struct {
	Dataset players.Dataset
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}
	// Block, when set, holds every fetch until it is closed or ctx ends.
	Block chan struct{}
}

// FetchDataset returns the configured dataset and error while tracking calls.
func (s *StubProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.Dataset, s.Err
}

// SequenceProvider returns Errs in order, then Dataset once the errors run out.
type SequenceProvider struct {
	Dataset players.Dataset
	Errs    []error
	calls   atomic.Int32
}

// FetchDataset returns the next scripted error or the dataset.
func (s *SequenceProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	_ = ctx
	n := int(s.calls.Add(1))
	if n <= len(s.Errs) && s.Errs[n-1] != nil {
		return nil, s.Errs[n-1]
	}
	return s.Dataset, nil
}

// Calls reports how many fetches were made.
func (s *SequenceProvider) Calls() int {
	return int(s.calls.Load())
}

// Refresh satisfies providers.Refresher by fetching again.
func (s *StubProvider) Refresh(ctx context.Context) (players.Dataset, error) {
	return s.FetchDataset(ctx)
}
