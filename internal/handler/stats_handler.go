package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	stats, err := h.StatsService.Dashboard(r.Context())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeSuccess(w, stats, http.StatusOK)
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health pings the database with a short deadline.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		writeSuccess(w, HealthResponse{Status: "unavailable", Database: "not configured"}, http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.HealthCheck(ctx); err != nil {
		h.logger().Warnw("health check failed", "error", err)
		writeSuccess(w, HealthResponse{Status: "unavailable", Database: "unreachable"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "ok"}, http.StatusOK)
}
