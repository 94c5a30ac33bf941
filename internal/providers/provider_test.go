package providers

import (
	"context"
	"testing"
	"time"

	"github.com/housefest/board-service/internal/domain/board"
)

type namedProvider struct{ name string }

func (n namedProvider) Name() string { return n.name }

func (namedProvider) FetchRaw(ctx context.Context, hint time.Time) (board.RawData, error) {
	_ = ctx
	_ = hint
	return board.RawData{}, nil
}

type anonymousProvider struct{}

func (anonymousProvider) FetchRaw(context.Context, time.Time) (board.RawData, error) {
	return board.RawData{}, nil
}

func TestSourceProviderInterfaceImplemented(t *testing.T) {
	var _ SourceProvider = namedProvider{}
	var _ SourceProvider = (*retryingProvider)(nil)
	var _ SourceProvider = (*rateLimitedProvider)(nil)
}

func TestNameOf(t *testing.T) {
	if got := NameOf(namedProvider{name: "workbook"}, "x"); got != "workbook" {
		t.Fatalf("expected provider name, got %s", got)
	}
	if got := NameOf(namedProvider{}, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty name, got %s", got)
	}
	if got := NameOf(anonymousProvider{}, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for unnamed provider, got %s", got)
	}
}

func TestDecoratorsKeepInnerName(t *testing.T) {
	inner := namedProvider{name: "googlesheets"}
	limited := NewRateLimitedProvider(inner, time.Millisecond, nil)
	retried := NewRetryingProvider(limited, nil, nil, "", 1, time.Millisecond)

	if got := NameOf(retried, ""); got != "googlesheets" {
		t.Fatalf("expected decorated provider to keep inner name, got %s", got)
	}
}
