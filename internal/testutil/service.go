package testutil

import (
	appplayers "github.com/preston-bernstein/player-records-service/internal/app/players"
	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// NewServiceWithDataset builds a players service over a provider serving ds.
func NewServiceWithDataset(ds players.Dataset) *appplayers.Service {
	return appplayers.NewService(GoodProvider{Dataset: ds}, nil, nil)
}
