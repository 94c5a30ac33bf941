package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/housefest/board-service/internal/http/middleware"
	"github.com/housefest/board-service/internal/http/requestutil"
	"github.com/housefest/board-service/internal/logging"
)

// jsonAPI mirrors encoding/json output, including sorted map keys.
var jsonAPI = sonic.ConfigStd

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	body, err := jsonAPI.Marshal(payload)
	if err != nil {
		logging.Error(logger, "failed to encode response", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logging.Debug(logger, "failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
