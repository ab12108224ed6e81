package httpserver

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type healthBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *handlers) live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ready.Ping(ctx); err != nil {
			h.log.Warn("readiness check failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, healthBody{Status: "fail", Timestamp: time.Now().UTC().Format(time.RFC3339)})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}
