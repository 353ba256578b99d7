package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// auditLimit reads ?limit=, falling back to the configured page size.
func (s *Server) auditLimit(r *http.Request) int {
	limit := s.cfg.Audit.PageLimit
	if limit <= 0 {
		limit = core.DefaultAuditLimit
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}
	return limit
}

// handleAuditLog renders the recent create and update history.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	limit := s.auditLimit(r)

	entries, err := s.service.AuditLog(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	render(w, r, templates.AuditLogPage(templates.AuditLogViewParams{
		Entries: entries,
		Enabled: s.service.AuditEnabled(),
		Limit:   limit,
	}))
}

// handleAPIAuditLog returns recent audit entries as JSON.
func (s *Server) handleAPIAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.AuditLog(r.Context(), s.auditLimit(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, entries)
}
