package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// handleIndex renders the products page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.ProductsPage(s.service.View()))
}

// handleProducts returns the catalog partial for htmx or the full page.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.renderCatalog(w, r)
}

// handleSearch applies the title filter and returns to page 1.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	s.service.Dispatch(core.Filter(r.PostForm.Get("q")))
	s.renderCatalog(w, r)
}

// handleSort toggles or switches the sort column. Unknown columns leave the
// view as it was.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	s.service.Dispatch(core.Sort(core.SortField(chi.URLParam(r, "field"))))
	s.renderCatalog(w, r)
}

// handlePageSize changes the rows per page.
func (s *Server) handlePageSize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	size, err := strconv.Atoi(r.PostForm.Get("size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page size")
		return
	}
	s.service.Dispatch(core.SetPageSize(size))
	s.renderCatalog(w, r)
}

// handleGoToPage navigates to a page. Out-of-range pages are ignored.
func (s *Server) handleGoToPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	s.service.Dispatch(core.GoToPage(page))
	s.renderCatalog(w, r)
}

// handleReload fetches the catalog again. A failure keeps the current
// working copy and reports through a toast.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.Load(r.Context())
	if err != nil {
		s.respondFailure(w, r, err, n, statusFor(err))
		return
	}
	setTrigger(w, core.Info("Catalog reloaded"), false)
	s.renderCatalog(w, r)
}

// handleNewProduct renders the empty create form.
func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.ProductModal(templates.ProductFormParams{
		Categories: s.service.Categories(),
	}))
}

// handleProductDetail renders the edit form for one product.
func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	detail, err := s.service.Detail(id)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	render(w, r, templates.ProductModal(templates.ProductFormParams{
		Detail:     &detail,
		Categories: detail.Categories,
	}))
}
