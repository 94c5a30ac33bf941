package teststubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/housefest/board-service/internal/domain/board"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Raw: board.RawData{Files: []board.MediaFile{{ID: "f1"}}}, Err: err, Notify: make(chan struct{})}
	hint := time.Date(2026, 2, 4, 9, 0, 0, 0, time.UTC)

	if _, got := p.FetchRaw(context.Background(), hint); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", p.Calls.Load())
	}
	select {
	case <-p.Notify:
	default:
		t.Fatalf("expected notify channel closed after first fetch")
	}
	if hints := p.Hints(); len(hints) != 1 || !hints[0].Equal(hint) {
		t.Fatalf("expected hint recorded, got %v", hints)
	}
}

func TestStubProviderReleaseHonoursContext(t *testing.T) {
	p := &StubProvider{Release: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.FetchRaw(ctx, time.Time{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if p.MaxInFlight() != 1 {
		t.Fatalf("expected one in-flight call observed, got %d", p.MaxInFlight())
	}
}

func TestStubNotifierRecords(t *testing.T) {
	n := &StubNotifier{}
	if err := n.Notify(context.Background(), board.EmptySnapshot(), "09:00:00 AM"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(n.Received()) != 1 {
		t.Fatalf("expected one notification, got %d", len(n.Received()))
	}
}
