package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/housefest/board-service/internal/domain/board"
)

const defaultMinInterval = 5 * time.Second

// rateLimitedProvider wraps a SourceProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     SourceProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a SourceProvider that allows at most one call per interval.
// The first call passes immediately; later calls block until the interval elapses or ctx ends.
func NewRateLimitedProvider(next SourceProvider, interval time.Duration, logger *slog.Logger) SourceProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) Name() string {
	return NameOf(p.next, "rate-limited")
}

func (p *rateLimitedProvider) FetchRaw(ctx context.Context, hint time.Time) (board.RawData, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return board.RawData{}, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.Name(), "rate-limited fetch canceled", "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return board.RawData{}, ctxErr
		}
		return board.RawData{}, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, p.Name(), "rate-limited provider fetch")
	return p.next.FetchRaw(ctx, hint)
}
