package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/player-records-service/internal/config"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/server"
)

const appVersion = "dev"

var dotEnvPaths = []string{".env", "../.env", "../../.env"}

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envFile := loadDotEnv(dotEnvPaths)

	cfg := config.Load()
	cfg.Version = appVersion
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: config.ServiceName,
		Version: appVersion,
	})
	if envFile != "" {
		logging.Info(logger, "loaded environment file", slog.String("path", envFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

// loadDotEnv loads the first readable file in paths without overriding variables already set.
func loadDotEnv(paths []string) string {
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}
