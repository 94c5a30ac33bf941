package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	appboard "github.com/housefest/board-service/internal/app/board"
	"github.com/housefest/board-service/internal/config"
	httpserver "github.com/housefest/board-service/internal/http"
	"github.com/housefest/board-service/internal/http/handlers"
	"github.com/housefest/board-service/internal/http/live"
	"github.com/housefest/board-service/internal/ingest"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/metrics"
	"github.com/housefest/board-service/internal/poller"
	"github.com/housefest/board-service/internal/providers"
	"github.com/housefest/board-service/internal/publisher"
	"github.com/housefest/board-service/internal/store"
	"github.com/housefest/board-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

const publisherPingTimeout = 2 * time.Second

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	board         *appboard.Service
	hub           *live.Hub
	publisher     *publisher.RedisPublisher
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured source, layout and notifiers.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	layout, err := config.LoadLayout(cfg.LayoutFile)
	if err != nil {
		return nil, err
	}
	return newServerWithSource(cfg, logger, layout, nil, nil), nil
}

// newServerWithSource wires every component. A nil source is built from cfg; a nil
// recorder is built by metrics setup.
func newServerWithSource(cfg config.Config, logger *slog.Logger, layout config.Layout, source providers.SourceProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if source == nil {
		source = factory.build(cfg)
	} else {
		source = factory.wrap(cfg, source)
	}

	memoryStore := store.NewMemoryStore()
	boardSvc := appboard.NewService(memoryStore, layout)
	fetcher := ingest.NewFetcher(source, layout.Schedule, layout.Resolver(), logger)
	plr := poller.New(fetcher, memoryStore, logger, recorder, poller.Options{
		Interval:     cfg.PollInterval,
		CycleTimeout: cfg.CycleTimeout,
		Location:     timeutil.ResolveLocation(cfg.Timezone),
	})

	hub := live.NewHub(boardSvc, logger, recorder)
	plr.AddNotifier(hub)
	pub := buildPublisher(cfg, logger, recorder)
	if pub != nil {
		plr.AddNotifier(pub)
	}

	httpSrv := buildHTTPServer(cfg, boardSvc, hub, plr, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		board:         boardSvc,
		hub:           hub,
		publisher:     pub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, boardSvc *appboard.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		board:      boardSvc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildPublisher(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *publisher.RedisPublisher {
	if !cfg.Redis.Enabled() {
		return nil
	}
	pub, err := publisher.NewRedisPublisher(cfg.Redis, logger, recorder)
	if err != nil {
		logging.Warn(logger, "redis publisher disabled", "error", err)
		return nil
	}
	return pub
}

func buildHTTPServer(cfg config.Config, boardSvc *appboard.Service, hub *live.Hub, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	routes := httpserver.Routes{
		Board: handlers.NewHandler(boardSvc, logger, statusFn),
	}
	if hub != nil {
		routes.Live = hub.ServeWS
	}
	// Admin refresh is only mounted when a token is configured.
	if cfg.AdminToken != "" && plr != nil {
		routes.Admin = handlers.NewAdminHandler(plr, cfg.AdminToken, logger)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.NewRouter(routes, logger, recorder),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the hub, poller and HTTP server, then waits for context cancellation to shut
// down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.hub != nil {
		go s.hub.Run(ctx)
	}
	s.checkPublisher(ctx)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// checkPublisher pings Redis once so a bad URL shows up at boot. Failures only warn.
func (s *Server) checkPublisher(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx, publisherPingTimeout)
	defer cancel()
	if err := s.publisher.Ping(pingCtx); err != nil {
		logging.Warn(s.logger, "redis unreachable, notifications will fail", "error", err)
	}
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			logging.Warn(s.logger, "redis publisher close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Board exposes the board service (useful for tests).
func (s *Server) Board() *appboard.Service {
	return s.board
}
