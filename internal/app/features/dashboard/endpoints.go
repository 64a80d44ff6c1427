// internal/app/features/dashboard/endpoints.go
package dashboard

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	board "github.com/dalemusser/strataesg/internal/app/dashboard"
	"github.com/dalemusser/strataesg/internal/app/dashboard/dispatch"
	"github.com/dalemusser/strataesg/internal/app/dashboard/widgets"
	"github.com/dalemusser/strataesg/internal/app/system/inputval"
	"github.com/dalemusser/strataesg/internal/app/system/jsonutil"
	"github.com/dalemusser/strataesg/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServePage renders the dashboard page with the current surface.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	v, err := h.snapshot(r)
	if err != nil {
		h.loopUnavailable(w, r, err)
		return
	}
	templates.Render(w, r, "dashboard/index", pageVM{
		BaseVM:  viewdata.NewBaseVM(r, h.SiteName, v.Company.Name),
		Surface: v.Document.HTML(),
		View:    v,
	})
}

// ServeSurface returns the rendered view surface as an HTML fragment.
func (h *Handler) ServeSurface(w http.ResponseWriter, r *http.Request) {
	v, err := h.snapshot(r)
	if err != nil {
		h.loopUnavailable(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(v.Document.HTML()))
}

// ServeState returns the current state as JSON.
func (h *Handler) ServeState(w http.ResponseWriter, r *http.Request) {
	v, err := h.snapshot(r)
	if err != nil {
		h.loopUnavailable(w, r, err)
		return
	}
	jsonutil.OK(w, v)
}

// ServeWidget returns one widget's SVG.
func (h *Handler) ServeWidget(w http.ResponseWriter, r *http.Request) {
	slot, ok := widgets.ParseSlot(strings.TrimSuffix(chi.URLParam(r, "slot"), ".svg"))
	if !ok {
		jsonutil.NotFound(w, "unknown widget")
		return
	}

	var markup string
	var live bool
	err := h.onLoop(r, func() {
		m, ok := h.Board.WidgetMarkup(slot)
		markup, live = string(m), ok
	})
	if err != nil {
		h.loopUnavailable(w, r, err)
		return
	}
	if !live {
		jsonutil.NotFound(w, "widget not rendered")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(markup))
}

// HandleAction routes a delegated click.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var in actionInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}
	if in.Target == "" && in.Action == "" {
		jsonutil.BadRequest(w, "Target or Action is required.")
		return
	}
	if in.Action == dispatch.Navigate && in.Section != "" {
		if res := inputval.Validate(navigateInput{Section: in.Section}); res.HasErrors() {
			jsonutil.ValidationError(w, res.First(), res.Fields())
			return
		}
	}

	var resp actionResponse
	err := h.onLoop(r, func() {
		resp.Handled = h.Board.Click(in.event())
		resp.State = h.Board.Snapshot()
	})
	if err != nil {
		h.loopUnavailable(w, r, err)
		return
	}
	if !resp.Handled {
		h.Log.Debug("click matched no action",
			zap.String("target", in.Target),
			zap.String("action", string(in.Action)))
	}
	jsonutil.OK(w, resp)
}

// HandleNavigate switches the active section.
func (h *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	in := navigateInput{Section: chi.URLParam(r, "section")}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.NotFound(w, res.First())
		return
	}
	h.mutate(w, r, func() { h.Board.NavigateTo(in.Section) })
}

// HandleStartReport starts report generation.
func (h *Handler) HandleStartReport(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.Board.StartReport)
}

// HandleCloseReport dismisses the report modal.
func (h *Handler) HandleCloseReport(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.Board.DismissReport)
}

// HandleUpload starts ingestion for a selected or dropped file.
// Only the file's name and size are used.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	in, err := uploadFromRequest(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonutil.Error(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		jsonutil.BadRequest(w, "invalid upload")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}

	f := board.FileInfo{Name: in.Name, Size: in.Size}
	dropped := r.FormValue("source") == "drop"
	h.mutate(w, r, func() {
		if dropped {
			h.Board.Drop(f)
			return
		}
		h.Board.SelectFile(f)
	})
}

// uploadFromRequest reads a multipart file header, falling back to the
// name and size form fields.
func uploadFromRequest(r *http.Request) (uploadInput, error) {
	var in uploadInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return in, err
		}
		if file, fh, err := r.FormFile("file"); err == nil {
			_ = file.Close()
			return uploadInput{Name: filepath.Base(fh.Filename), Size: fh.Size}, nil
		}
	} else if err := r.ParseForm(); err != nil {
		return in, err
	}

	in.Name = strings.TrimSpace(r.FormValue("name"))
	if s := r.FormValue("size"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return in, err
		}
		in.Size = n
	}
	return in, nil
}

// HandleDrag reports drag-over state on the upload area.
func (h *Handler) HandleDrag(w http.ResponseWriter, r *http.Request) {
	var in dragInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}
	h.mutate(w, r, func() {
		if in.State == "enter" {
			h.Board.DragEnter()
			return
		}
		h.Board.DragLeave()
	})
}

// HandleViewport reports a viewport resize. Resizes are debounced.
func (h *Handler) HandleViewport(w http.ResponseWriter, r *http.Request) {
	var in viewportInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}
	h.mutate(w, r, func() { h.Board.Viewport(in.Width, in.Height) })
}
