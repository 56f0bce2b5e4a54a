package config

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	Provider string
	Dataset  DatasetConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Metrics  MetricsConfig
	// Version is stamped by the binary, not read from the environment.
	Version string
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Provider: envOrDefault(envProvider, defaultProvider),
		Dataset:  loadDataset(),
		HTTP:     loadHTTP(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}
