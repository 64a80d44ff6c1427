// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	board "github.com/dalemusser/strataesg/internal/app/dashboard"
	uierrors "github.com/dalemusser/strataesg/internal/app/features/errors"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/jsonutil"
	"github.com/dalemusser/strataesg/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler owns the dashboard page and its interaction endpoints.
// Every read or mutation of dashboard state runs on the event loop.
type Handler struct {
	Loop     eventloop.Executor
	Board    *board.Dashboard
	SiteName string
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(loop eventloop.Executor, b *board.Dashboard, siteName string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Loop:     loop,
		Board:    b,
		SiteName: siteName,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// onLoop runs fn on the event loop, bounded by the loop timeout.
func (h *Handler) onLoop(r *http.Request, fn func()) error {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Loop())
	defer cancel()
	return h.Loop.Do(ctx, fn)
}

// snapshot reads the current view.
func (h *Handler) snapshot(r *http.Request) (board.View, error) {
	var v board.View
	err := h.onLoop(r, func() { v = h.Board.Snapshot() })
	return v, err
}

// mutate runs fn on the loop and answers with the resulting state.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func()) {
	var v board.View
	err := h.onLoop(r, func() {
		fn()
		v = h.Board.Snapshot()
	})
	if err != nil {
		h.loopUnavailable(w, r, err)
		return
	}
	jsonutil.OK(w, v)
}

func (h *Handler) loopUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	h.ErrLog.Log(r, "event loop unavailable", err)
	jsonutil.Unavailable(w, "dashboard unavailable")
}
