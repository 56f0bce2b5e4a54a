package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/player-records-service/internal/providers"
	"github.com/preston-bernstein/player-records-service/internal/query"
)

func TestClockHelpers(t *testing.T) {
	start := MustParseRFC3339("2024-01-02T03:04:05Z")
	clock := NewClock(start)
	if !clock.Now().Equal(start) {
		t.Fatalf("expected start time, got %v", clock.Now())
	}
	clock.Advance(90 * time.Second)
	if got := clock.Now().Sub(start); got != 90*time.Second {
		t.Fatalf("expected clock advanced 90s, got %s", got)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	row := SamplePlayer("Luka", "Doncic", "Dallas Mavericks", 2024)
	if *row.FirstName != "Luka" || *row.Team != "Dallas Mavericks" || *row.Season != 2024 {
		t.Fatalf("unexpected player fixture %+v", row)
	}
	ds := SampleDataset()
	if ds.Len() != 5 {
		t.Fatalf("expected five sample rows, got %d", ds.Len())
	}
}

func TestServiceHelper(t *testing.T) {
	svc := NewServiceWithDataset(SampleDataset())
	res, err := svc.Query(context.Background(), query.Request{Page: query.DefaultPageSpec()})
	if err != nil || res.Len() != 5 {
		t.Fatalf("expected five rows, got %d err %v", res.Len(), err)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	if err := sh.ListenAndServe(); !errors.Is(err, sh.ListenErr) {
		t.Fatalf("expected listen error, got %v", err)
	}
	if err := sh.Shutdown(context.Background()); !errors.Is(err, sh.ShutdownErr) {
		t.Fatalf("expected shutdown error, got %v", err)
	}
	if sh.Addr() != ":0" || sh.Handler() == nil {
		t.Fatalf("expected default addr and handler")
	}
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	blocking := &StubHTTPServer{Block: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := blocking.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected blocked shutdown to time out, got %v", err)
	}
	close(blocking.Block)
	if err := blocking.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected unblocked shutdown to succeed, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Fatalf("expected debug output buffered, got %q", buf.String())
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()

	p := GoodProvider{Dataset: SampleDataset()}
	if got, _ := p.FetchDataset(ctx); got.Len() != 5 {
		t.Fatalf("expected rows from GoodProvider")
	}

	errProv := ErrProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchDataset(ctx); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}

	empty := EmptyProvider{}
	if got, err := empty.FetchDataset(ctx); err != nil || got == nil || got.Len() != 0 {
		t.Fatalf("expected empty result, got %v err %v", got, err)
	}

	unavail := UnavailableProvider{}
	if _, err := unavail.FetchDataset(ctx); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}
}
