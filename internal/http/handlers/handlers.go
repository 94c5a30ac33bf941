package handlers

import (
	"log/slog"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	appboard "github.com/housefest/board-service/internal/app/board"
	"github.com/housefest/board-service/internal/chart"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/poller"
)

// EventIDVar is the route variable naming an event.
const EventIDVar = "eventID"

// Handler wires HTTP routes to the board service.
type Handler struct {
	svc      *appboard.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case readiness
// follows the store.
func NewHandler(svc *appboard.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: a snapshot was accepted and refreshes are not
// failing repeatedly.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		if h.svc.Ready() {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
			return
		}
		writeError(w, r, http.StatusServiceUnavailable, "not ready", h.logger)
		return
	}

	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "poller": status}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Board returns the full board view.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Board(), h.logger)
}

// Standings returns the overall standings with the leader banner.
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Standings(), h.logger)
}

// StandingsChart renders the overall standings as a PNG.
func (h *Handler) StandingsChart(w http.ResponseWriter, r *http.Request) {
	png, err := chart.RenderStandings(h.svc.OverallStandings(), h.svc.Layout().Teams)
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "standings chart failed", err)
		writeError(w, r, http.StatusInternalServerError, "chart unavailable", h.logger)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// EventLeaderboard returns the ranked teams of one event.
func (h *Handler) EventLeaderboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.EventLeaderboard(mux.Vars(r)[EventIDVar])
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, h.logger)
}

// EventSchedule returns the sub-schedule of one event.
func (h *Handler) EventSchedule(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.EventSchedule(mux.Vars(r)[EventIDVar])
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, h.logger)
}

// Announcements returns announcements grouped by category.
func (h *Handler) Announcements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Announcements(), h.logger)
}

// Gallery returns the resolved gallery images.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Gallery(), h.logger)
}

// NotFound is the router's fallback.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the router's fallback for known paths.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if crerr.Is(err, appboard.ErrEventNotFound) {
		writeError(w, r, http.StatusNotFound, "event not found", h.logger)
		return
	}
	logging.Error(loggerFromContext(r, h.logger), "event lookup failed", err)
	writeError(w, r, http.StatusInternalServerError, "internal error", h.logger)
}
