package server

import (
	"log/slog"

	"github.com/preston-bernstein/player-records-service/internal/config"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/providers"
	"github.com/preston-bernstein/player-records-service/internal/providers/csvfeed"
	"github.com/preston-bernstein/player-records-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DatasetProvider {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderCSV:
		return csvfeed.NewClient(csvfeed.Config{
			URL:     cfg.Dataset.URL,
			Timeout: cfg.Dataset.Timeout,
			Logger:  logger,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}
