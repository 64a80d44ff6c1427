// internal/app/features/health/health.go
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	board "github.com/dalemusser/strataesg/internal/app/dashboard"
	"github.com/dalemusser/strataesg/internal/app/dashboard/widgets"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Loop is the part of the event loop health checks need.
type Loop interface {
	eventloop.Executor
	Running() bool
}

// Handler provides health check endpoints.
type Handler struct {
	loop   Loop
	board  *board.Dashboard
	logger *zap.Logger
}

// NewHandler creates a new health check Handler.
func NewHandler(loop Loop, b *board.Dashboard, logger *zap.Logger) *Handler {
	return &Handler{
		loop:   loop,
		board:  b,
		logger: logger,
	}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready and /livez endpoints directly on the root router.
// This is the standard convention for Kubernetes probes:
//   - /ready (or /readyz) - readiness probe
//   - /livez - liveness probe
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// ping runs fn on the loop within the ping timeout.
func (h *Handler) ping(ctx context.Context, fn func()) error {
	if !h.loop.Running() {
		return eventloop.ErrStopped
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	return h.loop.Do(ctx, fn)
}

// Check reports the event loop and the chart widgets.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: make(map[string]string),
	}

	var charts bool
	var live int
	err := h.ping(r.Context(), func() {
		if h.board != nil {
			charts = h.board.Widgets().Available()
			live = h.board.Widgets().Count()
		}
	})
	if err != nil {
		resp.Status = "degraded"
		resp.Services["event_loop"] = "unavailable"
		resp.Services["charts"] = "unknown"
		h.logger.Warn("health check: event loop unavailable", zap.Error(err))
	} else {
		resp.Services["event_loop"] = "ok"
		switch {
		case !charts:
			resp.Services["charts"] = "disabled"
		case live == len(widgets.Slots):
			resp.Services["charts"] = "ok"
		default:
			// A missing widget degrades the page, not the service.
			resp.Services["charts"] = "partial (" + strconv.Itoa(live) + "/" + strconv.Itoa(len(widgets.Slots)) + ")"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(resp)
}

// Ready checks if the service is ready to accept requests.
// Used by Kubernetes readiness probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context(), func() {}); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ready"}`))
}

// Live checks if the service is alive.
// Used by Kubernetes liveness probes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"alive"}`))
}
