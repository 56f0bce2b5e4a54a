package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledInitializesRecorderAndHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: DefaultServiceName,
		// No OTLP endpoint; uses Prometheus exporter only.
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler == nil {
		t.Fatalf("expected handler when enabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}

	// Exercise otel-backed recorders to ensure no panic.
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordRefreshCycle(time.Millisecond, errors.New("boom"))
	rec.RecordProviderAttempt("csv", time.Millisecond, nil)
	rec.RecordRateLimit("csv", time.Second)
	rec.RecordQuery("season", 12, 5, time.Millisecond, nil)
	rec.RecordQuery("", 0, 0, time.Millisecond, errors.New("upstream"))
	rec.RecordUnsupportedGroup("career")
	rec.RecordCacheLookup(true)

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}

func TestSetupScrapeExposesQueryInstruments(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	rec.RecordQuery("team", 30, 2, 4*time.Millisecond, nil)
	rec.RecordUnsupportedGroup("career")
	rec.RecordCacheLookup(false)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	for _, want := range []string{"player_queries_total", `selector="career"`, `outcome="miss"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in scrape output:\n%s", want, body)
		}
	}
}
