package web

import (
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// handleCreateProduct validates the submitted form and creates the product
// remotely. On success the catalog is re-rendered with the new row first and
// the modal is closed. Failures keep the modal open and raise a toast.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	created, n, err := s.service.Create(r.Context(), form)
	if err != nil {
		s.respondFailure(w, r, err, n, statusFor(err))
		return
	}

	s.respondMutation(w, r, created, n, http.StatusCreated)
}

// handleUpdateProduct validates the submitted form and updates the product
// remotely, merging the returned fields into the working copy.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	form, err := parseProductForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	updated, n, err := s.service.Update(r.Context(), id, form)
	if err != nil {
		s.respondFailure(w, r, err, n, statusFor(err))
		return
	}

	s.respondMutation(w, r, updated, n, http.StatusOK)
}

// respondMutation reports a successful create or update.
func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, p core.Product, n core.Notification, status int) {
	switch {
	case isHTMX(r):
		setTrigger(w, n, true)
		s.renderCatalog(w, r)
	case wantsJSON(r):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		writeJSON(w, p)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
