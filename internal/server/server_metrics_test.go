package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/housefest/board-service/internal/config"
	"github.com/housefest/board-service/internal/metrics"
	"github.com/housefest/board-service/internal/providers/fixture"
	"github.com/housefest/board-service/internal/testutil"
)

func TestNewServerWithSourceHandlesMetricsSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: "fixture",
	}

	srv := newServerWithSource(cfg, nil, testLayout(t), fixture.New(), nil)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
}

func TestNewServerWithSourceMetricsDisabledSkipsServer(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()
	metricsSetup = testutil.StubMetricsSetup

	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: false},
		Provider: "fixture",
	}

	srv := newServerWithSource(cfg, nil, testLayout(t), fixture.New(), nil)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithSourceUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: "fixture",
	}

	srv := newServerWithSource(cfg, nil, testLayout(t), fixture.New(), rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no telemetry shutdown with an injected recorder")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected injected shutdown to succeed, got %v", err)
	}
}

func TestSourceAttemptsAreRecorded(t *testing.T) {
	rec := metrics.NewRecorder()
	srv := newServerWithSource(config.Config{Provider: "fixture"}, nil, testLayout(t), fixture.New(), rec)

	plr, ok := srv.poller.(interface{ RunOnce(context.Context) error })
	if !ok {
		t.Fatalf("expected concrete poller")
	}
	if err := plr.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if got := rec.ProviderCalls("fixture"); got != 1 {
		t.Fatalf("expected one recorded fixture attempt, got %d", got)
	}
	if accepted, _ := rec.AcceptedSnapshots(); accepted != 1 {
		t.Fatalf("expected one accepted snapshot, got %d", accepted)
	}
}
