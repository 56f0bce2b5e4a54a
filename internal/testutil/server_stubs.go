package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/player-records-service/internal/poller"
)

// StubPoller records Start/Stop calls and reports a fixed refresh status.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(context.Context) { p.StartCalls++ }

func (p *StubPoller) Stop(context.Context) error {
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

// StubHTTPServer stands in for the public and metrics listeners.
// ListenAndServe returns ListenErr immediately. When Block is set, Shutdown
// waits for it to close or for ctx to end.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	ListenCalls   int
	ShutdownCalls int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.ShutdownCalls++
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}
