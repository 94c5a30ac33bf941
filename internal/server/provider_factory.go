package server

import (
	"log/slog"

	"github.com/housefest/board-service/internal/config"
	"github.com/housefest/board-service/internal/metrics"
	"github.com/housefest/board-service/internal/providers"
)

// providerFactory assembles the source with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.SourceProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap applies the source quota limiter and the retry policy to base.
func (f providerFactory) wrap(cfg config.Config, base providers.SourceProvider) providers.SourceProvider {
	limited := providers.NewRateLimitedProvider(base, cfg.SourceMinInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}

// BuildSource returns the configured source with the same wrappers the server uses.
func BuildSource(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.SourceProvider {
	return newProviderFactory(logger, recorder).build(cfg)
}
