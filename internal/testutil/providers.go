package testutil

import (
	"context"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/providers"
)

// GoodProvider returns the provided dataset with no error.
type GoodProvider struct {
	Dataset players.Dataset
}

func (p GoodProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	_ = ctx
	return p.Dataset, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	_ = ctx
	return nil, p.Err
}

// EmptyProvider returns an empty dataset, no error.
type EmptyProvider struct{}

func (EmptyProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	_ = ctx
	return players.Dataset{}, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	_ = ctx
	return nil, providers.ErrProviderUnavailable
}
