package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// MaxFormSize bounds create and update request bodies.
const MaxFormSize = 64 * 1024

// parseProductForm reads the product form fields from the request body.
func parseProductForm(w http.ResponseWriter, r *http.Request) (core.ProductForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormSize)
	if err := r.ParseForm(); err != nil {
		return core.ProductForm{}, err
	}
	return core.ProductForm{
		Title:       r.PostForm.Get("title"),
		Price:       r.PostForm.Get("price"),
		Description: r.PostForm.Get("description"),
		CategoryID:  r.PostForm.Get("categoryId"),
		Images:      r.PostForm.Get("images"),
	}, nil
}

// intParam parses a positive integer URL parameter.
func intParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// setTrigger publishes n as an htmx "toast" event. closeModal also asks the
// page to dismiss the open form.
func setTrigger(w http.ResponseWriter, n core.Notification, closeModal bool) {
	events := map[string]any{}
	if !n.IsZero() {
		events["toast"] = n
	}
	if closeModal {
		events["closeModal"] = true
	}
	if len(events) == 0 {
		return
	}

	b, err := json.Marshal(events)
	if err != nil {
		slog.Error("encode HX-Trigger", "error", err)
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

// render writes c as HTML, logging failures since headers are already sent.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render failed", "path", r.URL.Path, "error", err)
	}
}

// renderCatalog swaps in the catalog partial, or the whole page when the
// request did not come from htmx.
func (s *Server) renderCatalog(w http.ResponseWriter, r *http.Request) {
	v := s.service.View()
	if isHTMX(r) {
		render(w, r, templates.Catalog(v))
		return
	}
	render(w, r, templates.ProductsPage(v))
}
