package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// exportPath serves the CSV once the check succeeded.
const exportPath = "/products/export.csv"

// handleExportCheck validates that the visible page has rows. htmx clients
// are redirected to the download; an empty page only raises a toast.
func (s *Server) handleExportCheck(w http.ResponseWriter, r *http.Request) {
	_, n, err := s.service.Export(s.now())
	if errors.Is(err, core.ErrNothingToExport) {
		setTrigger(w, n, false)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.respondFailure(w, r, err, n, http.StatusInternalServerError)
		return
	}

	setTrigger(w, n, false)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", exportPath)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, exportPath, http.StatusSeeOther)
}

// handleExportCSV streams the visible page as a CSV attachment.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	res, n, err := s.service.Export(s.now())
	if err != nil {
		s.respondFailure(w, r, err, n, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Write(res.Data)
}

// handleAPIView returns the current view description as JSON.
func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.View())
}

// handleAPICategories returns the loaded categories as JSON.
func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	cats := s.service.Categories()
	if cats == nil {
		cats = []core.Category{}
	}
	writeJSON(w, cats)
}

// healthResponse is the /healthz body.
type healthResponse struct {
	Status    string              `json:"status"`
	Loaded    bool                `json:"loaded"`
	Mutations core.MutationStatus `json:"mutations"`
	Checks    map[string]string   `json:"checks,omitempty"`
}

// handleHealth reports liveness, load state, limiter usage and the result of
// each registered dependency check. Any failing check yields 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:    "ok",
		Loaded:    s.service.Loaded(),
		Mutations: s.service.MutationStatus(),
	}
	status := http.StatusOK

	if len(s.checks) > 0 {
		resp.Checks = make(map[string]string, len(s.checks))
	}
	for _, c := range s.checks {
		if err := c.Check(ctx); err != nil {
			resp.Checks[c.Name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.Name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeJSON(w, resp)
}
