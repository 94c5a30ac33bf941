package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/housefest/board-service/internal/http/requestutil"
	"github.com/housefest/board-service/internal/logging"
)

// Refresher requests an out-of-band refresh cycle.
type Refresher interface {
	Trigger() bool
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh queues an immediate refresh cycle. Requests arriving while one is already
// queued are coalesced into it.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	status := "queued"
	if !h.refresher.Trigger() {
		status = "pending"
	}
	logging.Info(logger, "admin refresh requested", slog.String(logging.FieldState, status))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": status}, h.logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
