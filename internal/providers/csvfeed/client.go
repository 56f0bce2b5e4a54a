package csvfeed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/providers"
)

// Config controls how the feed client reaches the published CSV.
type Config struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client downloads the player-season CSV and decodes it into a dataset.
type Client struct {
	url        string
	httpClient httpDoer
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient constructs a feed client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		url:        cfg.URL,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchDataset downloads and decodes the whole feed. Every call hits the upstream.
func (c *Client) FetchDataset(ctx context.Context) (players.Dataset, error) {
	if c.url == "" {
		return nil, errors.Wrap(providers.ErrProviderUnavailable, "csv feed url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build feed request")
	}
	req.Header.Set("Accept", "text/csv")
	req.Header.Set("User-Agent", userAgent)

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch csv feed")
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	ds, report, err := Decode(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "decode csv feed")
	}

	logger := logging.FromContext(ctx, c.logger)
	logging.Info(logger, "csv feed fetched",
		logging.FieldProvider, ProviderName,
		logging.FieldRows, report.Rows,
		logging.FieldSkipped, report.InvalidCells,
		logging.FieldDurationMS, c.now().Sub(start).Milliseconds(),
	)
	if len(report.MissingColumns) > 0 {
		logging.Warn(logger, "csv feed is missing columns",
			logging.FieldProvider, ProviderName,
			"columns", report.MissingColumns,
		)
	}
	return ds, nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body := bodyExcerpt(resp.Body)
	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "csv feed rate limited",
		}
	}
	return &providers.StatusError{
		Provider:   ProviderName,
		StatusCode: resp.StatusCode,
		Body:       body,
	}
}
