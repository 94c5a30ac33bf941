package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/housefest/board-service/internal/domain/board"
)

// StubProvider is a test double for providers.SourceProvider.
type StubProvider struct {
	Raw    board.RawData
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
	// Release, when set, blocks every fetch until a value is received or ctx ends.
	Release chan struct{}

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	mu          sync.Mutex
	hints       []time.Time
}

// FetchRaw returns the configured raw data and error while tracking calls.
func (s *StubProvider) FetchRaw(ctx context.Context, hint time.Time) (board.RawData, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.maxInFlight.Load()
		if n <= peak || s.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	s.mu.Lock()
	s.hints = append(s.hints, hint)
	s.mu.Unlock()

	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	if s.Release != nil {
		select {
		case <-s.Release:
		case <-ctx.Done():
			return board.RawData{}, ctx.Err()
		}
	}
	return s.Raw, s.Err
}

// MaxInFlight reports the highest number of concurrent FetchRaw calls observed.
func (s *StubProvider) MaxInFlight() int32 {
	return s.maxInFlight.Load()
}

// Hints returns the timestamp hints passed to FetchRaw, in call order.
func (s *StubProvider) Hints() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.hints...)
}

// StubNotifier records snapshot notifications.
type StubNotifier struct {
	Err error

	mu       sync.Mutex
	received []board.Snapshot
}

// Notify records the snapshot and returns the configured error.
func (n *StubNotifier) Notify(_ context.Context, snap board.Snapshot, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, snap)
	return n.Err
}

// Received returns the snapshots seen so far.
func (n *StubNotifier) Received() []board.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]board.Snapshot(nil), n.received...)
}
