package providers

import (
	"context"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// DatasetProvider fetches the full player-season table from an upstream source.
// Implementations return rows in upstream order.
type DatasetProvider interface {
	FetchDataset(ctx context.Context) (players.Dataset, error)
}

// Refresher is implemented by providers that can be forced to reload.
type Refresher interface {
	Refresh(ctx context.Context) (players.Dataset, error)
}
