package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"catalog-service/internal/store"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	baseHandler
	pinger store.Pinger
}

func NewHealthHandler(p store.Pinger, l *slog.Logger) *HealthHandler {
	return &HealthHandler{baseHandler: baseHandler{logger: l}, pinger: p}
}

// Healthz отвечает 200, если хранилище доступно, иначе 503.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := h.pinger.PingContext(ctx); err != nil {
		h.log(ctx).WarnContext(ctx, "Health check failed", slog.String("error", err.Error()))
		h.respondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
