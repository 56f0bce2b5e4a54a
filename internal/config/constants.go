package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envDatasetURL       = "DATASET_URL"
	envDatasetTimeout   = "DATASET_TIMEOUT"
	envCacheTTL         = "DATASET_CACHE_TTL"
	envRefreshInterval  = "DATASET_REFRESH_INTERVAL"
	envFetchAttempts    = "DATASET_FETCH_ATTEMPTS"
	envFetchBackoff     = "DATASET_FETCH_BACKOFF"
	envMinFetchInterval = "DATASET_MIN_FETCH_INTERVAL"
	envCORSOrigins      = "CORS_ALLOWED_ORIGINS"
	envAdminToken       = "ADMIN_TOKEN"
	envReadTimeout      = "HTTP_READ_TIMEOUT"
	envWriteTimeout     = "HTTP_WRITE_TIMEOUT"
	envShutdownTimeout  = "SHUTDOWN_TIMEOUT"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"

	ProviderCSV     = "csv"
	ProviderFixture = "fixture"

	ServiceName = "player-records-service"

	defaultPort     = "8000"
	defaultProvider = ProviderCSV
	// Published Google Sheets export of the player-season table.
	defaultDatasetURL     = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSf4n2VLM5ie-XRD3_ZzwoOfukCTZLoF_KgJRsCKDHVZ-OJ9ugG1hL5gc32Y24gUgngxkzX-FuYpBF7/pub?gid=20714965&single=true&output=csv"
	defaultDatasetTimeout = 15 * Duration(time.Second)
	defaultFetchAttempts  = 3
	defaultFetchBackoff   = 200 * Duration(time.Millisecond)
	defaultCORSOrigins    = "*"
	defaultReadTimeout    = 10 * Duration(time.Second)
	defaultWriteTimeout   = 10 * Duration(time.Second)
	defaultShutdown       = 10 * Duration(time.Second)
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultMetricsPort    = "9090"
)
