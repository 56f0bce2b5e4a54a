package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != ProviderCSV {
		t.Fatalf("expected default provider %s, got %s", ProviderCSV, cfg.Provider)
	}
	if cfg.Dataset.URL != defaultDatasetURL {
		t.Fatalf("expected default dataset url, got %s", cfg.Dataset.URL)
	}
	if cfg.Dataset.Timeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", cfg.Dataset.Timeout)
	}
	if cfg.Dataset.CacheEnabled() {
		t.Fatal("expected cache disabled by default")
	}
	if cfg.Dataset.RefreshInterval != 0 || cfg.Dataset.MinFetchInterval != 0 {
		t.Fatalf("expected refresh and limiter disabled, got %+v", cfg.Dataset)
	}
	if cfg.Dataset.FetchAttempts != 3 || cfg.Dataset.FetchBackoff != 200*time.Millisecond {
		t.Fatalf("unexpected retry defaults %+v", cfg.Dataset)
	}
	if !reflect.DeepEqual(cfg.HTTP.AllowedOrigins, []string{"*"}) {
		t.Fatalf("expected allow-all origins, got %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.HTTP.AdminToken != "" {
		t.Fatalf("expected empty admin token, got %q", cfg.HTTP.AdminToken)
	}
	if cfg.HTTP.ReadTimeout != 10*time.Second || cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected http timeouts %+v", cfg.HTTP)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Metrics.ServiceName != ServiceName {
		t.Fatalf("expected service name %s, got %s", ServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envProvider, "fixture")
	t.Setenv(envDatasetURL, "http://example.com/players.csv")
	t.Setenv(envDatasetTimeout, "3s")
	t.Setenv(envCacheTTL, "1m")
	t.Setenv(envFetchAttempts, "5")
	t.Setenv(envMinFetchInterval, "500ms")
	t.Setenv(envCORSOrigins, "https://a.example, https://b.example ,")
	t.Setenv(envAdminToken, " secret ")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envWriteTimeout, "30s")
	t.Setenv(envShutdownTimeout, "bogus")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Provider != ProviderFixture {
		t.Fatalf("expected fixture provider, got %s", cfg.Provider)
	}
	if cfg.Dataset.URL != "http://example.com/players.csv" {
		t.Fatalf("expected dataset url override, got %s", cfg.Dataset.URL)
	}
	if cfg.Dataset.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Dataset.Timeout)
	}
	if !cfg.Dataset.CacheEnabled() || cfg.Dataset.CacheTTL != time.Minute {
		t.Fatalf("expected 1m cache, got %s", cfg.Dataset.CacheTTL)
	}
	if cfg.Dataset.RefreshInterval != time.Minute {
		t.Fatalf("expected refresh interval to follow the cache ttl, got %s", cfg.Dataset.RefreshInterval)
	}
	if cfg.Dataset.FetchAttempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", cfg.Dataset.FetchAttempts)
	}
	if cfg.Dataset.MinFetchInterval != 500*time.Millisecond {
		t.Fatalf("expected 500ms limiter, got %s", cfg.Dataset.MinFetchInterval)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.HTTP.AllowedOrigins, want) {
		t.Fatalf("expected %v, got %v", want, cfg.HTTP.AllowedOrigins)
	}
	if cfg.HTTP.AdminToken != "secret" {
		t.Fatalf("expected trimmed admin token, got %q", cfg.HTTP.AdminToken)
	}
	if cfg.HTTP.WriteTimeout != 30*time.Second {
		t.Fatalf("expected 30s write timeout, got %s", cfg.HTTP.WriteTimeout)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected invalid shutdown timeout to fall back, got %s", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("expected json log format, got %s", cfg.Log.Format)
	}
}

func TestLoadExplicitRefreshInterval(t *testing.T) {
	t.Setenv(envCacheTTL, "1m")
	t.Setenv(envRefreshInterval, "20s")

	cfg := Load()

	if cfg.Dataset.RefreshInterval != 20*time.Second {
		t.Fatalf("expected 20s refresh, got %s", cfg.Dataset.RefreshInterval)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envDatasetTimeout, "not-a-duration")

	cfg := Load()

	if cfg.Dataset.Timeout != defaultDatasetTimeout {
		t.Fatalf("expected default timeout on invalid value, got %s", cfg.Dataset.Timeout)
	}
}

func TestLoadNonPositiveValuesFallBack(t *testing.T) {
	t.Setenv(envDatasetTimeout, "0s")
	t.Setenv(envFetchAttempts, "-2")

	cfg := Load()

	if cfg.Dataset.Timeout != defaultDatasetTimeout {
		t.Fatalf("expected default timeout on non-positive value, got %s", cfg.Dataset.Timeout)
	}
	if cfg.Dataset.FetchAttempts != defaultFetchAttempts {
		t.Fatalf("expected default attempts, got %d", cfg.Dataset.FetchAttempts)
	}
}
