package testutil

import (
	"context"
	"net/http"

	"github.com/housefest/board-service/internal/metrics"
)

// NewRecorderWithShutdown returns a recorder and a no-op shutdown to simplify tests.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}

// StubMetricsSetup has the shape of metrics.Setup and never touches a real exporter.
func StubMetricsSetup(_ context.Context, _ metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	rec, shutdown := NewRecorderWithShutdown()
	return rec, http.NotFoundHandler(), shutdown, nil
}
