package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type healthJSON struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
}

// ServeHealth handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable" }
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		h.Log.Error("health-check: postgres ping failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, healthJSON{
			Status:   "error",
			Database: "disconnected",
			Message:  "Database unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, healthJSON{Status: "ok", Database: "connected"})
}
