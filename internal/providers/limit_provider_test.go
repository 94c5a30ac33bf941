package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/housefest/board-service/internal/teststubs"
)

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 20*time.Millisecond, nil)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := rl.FetchRaw(context.Background(), time.Time{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	elapsed := time.Since(start)
	if elapsed < 15*time.Millisecond {
		t.Fatalf("expected second call to wait for the limiter, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected inner provider called twice, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchRaw(ctx, time.Time{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner SourceProvider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	_, err := rl.FetchRaw(context.Background(), time.Time{})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubProvider{}, 0, nil).(*rateLimitedProvider)
	if rl.interval != defaultMinInterval {
		t.Fatalf("expected default interval %s, got %s", defaultMinInterval, rl.interval)
	}
}
