package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/housefest/board-service/internal/poller"
)

// StubPoller implements the server's scheduler contract for tests.
type StubPoller struct {
	mu            sync.Mutex
	StartCalls    int
	StopCalls     int
	TriggerCalls  int
	Err           error
	StatusVal     poller.Status
	TriggerResult bool
	Started       chan struct{}
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.mu.Lock()
	p.StartCalls++
	p.mu.Unlock()
	if p.Started != nil {
		close(p.Started)
	}
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Trigger() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TriggerCalls++
	return p.TriggerResult
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// Calls returns the start and stop counts.
func (p *StubPoller) Calls() (start, stop int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StartCalls, p.StopCalls
}

// StubHTTPServer implements the server's httpServer for tests. ListenAndServe returns
// ListenErr immediately.
type StubHTTPServer struct {
	mu            sync.Mutex
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// Calls returns the listen and shutdown counts.
func (s *StubHTTPServer) Calls() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ListenCalls, s.ShutdownCalls
}

// BlockingHTTPServer allows simulating a shutdown that waits on an unblock channel.
type BlockingHTTPServer struct {
	AddrVal    string
	HandlerVal http.Handler
	Unblock    chan struct{}
}

func (b *BlockingHTTPServer) ListenAndServe() error {
	return http.ErrServerClosed
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

func (b *BlockingHTTPServer) Addr() string {
	return b.AddrVal
}

func (b *BlockingHTTPServer) Handler() http.Handler {
	return b.HandlerVal
}
