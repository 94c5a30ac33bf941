package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/housefest/board-service/internal/http/handlers"
	"github.com/housefest/board-service/internal/http/middleware"
	"github.com/housefest/board-service/internal/metrics"
)

// APIPrefix is the mount point of the versioned board API.
const APIPrefix = "/api/v1"

// Routes bundles what NewRouter mounts. Live and Admin are optional.
type Routes struct {
	Board *handlers.Handler
	Live  nethttp.HandlerFunc
	Admin *handlers.AdminHandler
}

// NewRouter registers the board routes on a mux.Router wrapped in logging and no-store
// middleware.
func NewRouter(routes Routes, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	h := routes.Board
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger, recorder), middleware.NoStore)

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)

	api := r.PathPrefix(APIPrefix).Subrouter()
	api.HandleFunc("/board", h.Board).Methods(nethttp.MethodGet)
	api.HandleFunc("/standings", h.Standings).Methods(nethttp.MethodGet)
	api.HandleFunc("/standings/chart.png", h.StandingsChart).Methods(nethttp.MethodGet)
	api.HandleFunc("/events/{"+handlers.EventIDVar+"}/leaderboard", h.EventLeaderboard).Methods(nethttp.MethodGet)
	api.HandleFunc("/events/{"+handlers.EventIDVar+"}/schedule", h.EventSchedule).Methods(nethttp.MethodGet)
	api.HandleFunc("/announcements", h.Announcements).Methods(nethttp.MethodGet)
	api.HandleFunc("/gallery", h.Gallery).Methods(nethttp.MethodGet)

	if routes.Live != nil {
		r.HandleFunc("/ws/board", routes.Live).Methods(nethttp.MethodGet)
	}
	if routes.Admin != nil {
		r.HandleFunc("/admin/refresh", routes.Admin.Refresh).Methods(nethttp.MethodPost)
	}

	// Fallbacks bypass router middleware, so they are wrapped explicitly.
	r.NotFoundHandler = middleware.LoggingMiddleware(logger, recorder, middleware.NoStore(nethttp.HandlerFunc(h.NotFound)))
	r.MethodNotAllowedHandler = middleware.LoggingMiddleware(logger, recorder, middleware.NoStore(nethttp.HandlerFunc(h.MethodNotAllowed)))
	return r
}
