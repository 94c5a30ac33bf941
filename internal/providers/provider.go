package providers

import (
	"context"
	"time"

	"github.com/housefest/board-service/internal/domain/board"
)

// SourceProvider reads every raw range of the board source in one cycle.
// The hint is the fetch-cycle timestamp; sources may use it for relative values.
// A provider either returns all ranges or an error, never a partial result.
type SourceProvider interface {
	FetchRaw(ctx context.Context, hint time.Time) (board.RawData, error)
}

// Named is implemented by providers that report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns the provider's name, or fallback when it has none.
func NameOf(p SourceProvider, fallback string) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
