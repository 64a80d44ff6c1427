// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a chi.Router with the dashboard routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ServePage)
	r.Get("/state", h.ServeState)
	r.Get("/surface", h.ServeSurface)
	r.Get("/widgets/{slot}", h.ServeWidget)

	r.Post("/actions", h.HandleAction)
	r.Post("/navigate/{section}", h.HandleNavigate)
	r.Post("/report", h.HandleStartReport)
	r.Post("/report/close", h.HandleCloseReport)
	r.Post("/upload", h.HandleUpload)
	r.Post("/upload/drag", h.HandleDrag)
	r.Post("/viewport", h.HandleViewport)
	return r
}
