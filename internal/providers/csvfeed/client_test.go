package csvfeed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/player-records-service/internal/providers"
	"github.com/preston-bernstein/player-records-service/internal/testutil"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestFetchDatasetDecodesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "text/csv", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, feedHeader+"Stephen,Curry,Stephen,Curry,Golden State Warriors,2023,G,188,84,USA,1988-03-14\n")
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL + "/players.csv"})
	ds, err := c.FetchDataset(context.Background())

	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "Curry", *ds[0].LastName)
}

func TestFetchDatasetNonOKIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sheet not published", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(Config{URL: srv.URL}).FetchDataset(context.Background())

	statusErr, ok := providers.AsStatusError(err)
	require.True(t, ok, "expected status error, got %v", err)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "sheet not published", statusErr.Body)
}

func TestFetchDatasetRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(Config{URL: srv.URL}).FetchDataset(context.Background())

	rlErr, ok := providers.AsRateLimitError(err)
	require.True(t, ok, "expected rate limit error, got %v", err)
	assert.Equal(t, 7*time.Second, rlErr.RetryAfter)
	assert.Equal(t, ProviderName, rlErr.Provider)
}

func TestFetchDatasetRateLimitedWithHTTPDate(t *testing.T) {
	now := testutil.MustParseRFC3339("2024-03-01T12:00:00Z")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", now.Add(45*time.Second).Format(http.TimeFormat))
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL})
	c.now = testutil.NewClock(now).Now
	_, err := c.FetchDataset(context.Background())

	rlErr, ok := providers.AsRateLimitError(err)
	require.True(t, ok, "expected rate limit error, got %v", err)
	assert.Equal(t, 45*time.Second, rlErr.RetryAfter)
}

func TestFetchDatasetTransportErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	c := NewClient(Config{
		URL: "http://feed.invalid/players.csv",
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, boom
		})},
	})

	_, err := c.FetchDataset(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch csv feed")
}

func TestFetchDatasetMalformedFeed(t *testing.T) {
	c := NewClient(Config{
		URL: "http://feed.invalid/players.csv",
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("")),
				Header:     make(http.Header),
			}, nil
		})},
	})

	_, err := c.FetchDataset(context.Background())

	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestFetchDatasetWithoutURL(t *testing.T) {
	_, err := NewClient(Config{}).FetchDataset(context.Background())

	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestFetchDatasetHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(Config{URL: srv.URL}).FetchDataset(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
