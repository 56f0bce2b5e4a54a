package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// DefaultServiceName is reported when no service name is configured.
const DefaultServiceName = "player-records-service"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	queries           metric.Int64Counter
	queryErrors       metric.Int64Counter
	queryLatencyMs    metric.Float64Histogram
	queryMatched      metric.Int64Histogram
	queryReturned     metric.Int64Histogram
	unsupportedGroups metric.Int64Counter
	cacheLookups      metric.Int64Counter
	refreshCycles     metric.Int64Counter
	refreshErrors     metric.Int64Counter
	refreshLatencyMs  metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(DefaultServiceName)}
	inst := &otelInstruments{
		ctx:               context.Background(),
		meter:             b.meter,
		requests:          b.counter("http_requests_total", "HTTP requests served"),
		requestLatencyMs:  b.histogram("http_request_duration_ms", "HTTP request latency"),
		providerAttempts:  b.counter("provider_attempts_total", "Upstream dataset fetch attempts"),
		providerErrors:    b.counter("provider_errors_total", "Failed upstream dataset fetch attempts"),
		providerLatencyMs: b.histogram("provider_duration_ms", "Upstream dataset fetch latency"),
		rateLimitHits:     b.counter("provider_rate_limit_hits_total", "Upstream 429 responses"),
		retryAfterMs:      b.histogram("provider_retry_after_ms", "Retry-After advertised by the upstream"),
		queries:           b.counter("player_queries_total", "Player queries by group mode"),
		queryErrors:       b.counter("player_query_errors_total", "Player queries that failed to load the dataset"),
		queryLatencyMs:    b.histogram("player_query_duration_ms", "Player query latency including the dataset fetch"),
		queryMatched:      b.intHistogram("player_query_matched_records", "Records or groups matched before pagination"),
		queryReturned:     b.intHistogram("player_query_returned_records", "Records or groups returned on the page"),
		unsupportedGroups: b.counter("player_query_unsupported_group_total", "Unrecognized group_by selectors"),
		cacheLookups:      b.counter("dataset_cache_lookups_total", "Dataset cache lookups by outcome"),
		refreshCycles:     b.counter("dataset_refresh_cycles_total", "Background dataset refresh cycles"),
		refreshErrors:     b.counter("dataset_refresh_errors_total", "Failed background dataset refreshes"),
		refreshLatencyMs:  b.histogram("dataset_refresh_duration_ms", "Background dataset refresh latency"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

// instrumentBuilder keeps the first creation error so instruments can be declared inline.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) keep(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.keep(err)
	return c
}

func (b *instrumentBuilder) histogram(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc))
	b.keep(err)
	return h
}

func (b *instrumentBuilder) intHistogram(name, desc string) metric.Int64Histogram {
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc))
	b.keep(err)
	return h
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.providerAttempts, 1, attrs...)
	o.recordHistogram(o.providerLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.providerErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordQuery(mode string, total, returned int, duration time.Duration, err error) {
	if o == nil {
		return
	}
	if mode == "" {
		mode = "none"
	}
	attrs := []attribute.KeyValue{attribute.String(AttrMode, mode)}
	o.recordCounter(o.queries, 1, attrs...)
	o.recordHistogram(o.queryLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.queryErrors, 1, attrs...)
		return
	}
	o.queryMatched.Record(o.ctx, int64(total), metric.WithAttributes(attrs...))
	o.queryReturned.Record(o.ctx, int64(returned), metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordUnsupportedGroup(selector string) {
	if o == nil {
		return
	}
	o.recordCounter(o.unsupportedGroups, 1, attribute.String(AttrSelector, selector))
}

func (o *otelInstruments) recordCacheLookup(hit bool) {
	if o == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	o.recordCounter(o.cacheLookups, 1, attribute.String(AttrOutcome, outcome))
}

func (o *otelInstruments) recordRefresh(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.refreshCycles, 1)
	o.recordHistogram(o.refreshLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.refreshErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
