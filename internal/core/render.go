package core

// render.go turns a ViewState into a View: a structured description of what
// the table screen shows. It is a pure function so the whole screen can be
// unit tested without a browser; templ components only draw a View.

import (
	"fmt"
	"strings"
)

// paginationWindow is how many pages either side of the current page get a
// direct link. Pages one step beyond the window become an ellipsis.
const paginationWindow = 2

// categoryPalette colors category badges by category id.
var categoryPalette = []string{
	"#3498db",
	"#e74c3c",
	"#2ecc71",
	"#f39c12",
	"#9b59b6",
	"#1abc9c",
}

// View is the render output for the product table screen.
type View struct {
	Loaded     bool       `json:"loaded"`
	Rows       []Row      `json:"rows"`
	Pagination Pagination `json:"pagination"`
	Summary    string     `json:"summary"`

	Query     string    `json:"query"`
	SortKey   SortField `json:"sortKey,omitempty"`
	SortDir   SortDir   `json:"sortDir"`
	PageSize  int       `json:"pageSize"`
	PageSizes []int     `json:"pageSizes"`

	// First and Last are 1-based positions of the visible rows within the
	// filtered list (0 when empty). Total is the filtered count.
	First int `json:"first"`
	Last  int `json:"last"`
	Total int `json:"total"`
}

// Row is one table row.
type Row struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Price         string `json:"price"`
	Category      string `json:"category"`
	CategoryColor string `json:"categoryColor"`
	Thumbnail     string `json:"thumbnail"`
	HasImage      bool   `json:"hasImage"`
	Tooltip       string `json:"tooltip"`
}

// Pagination describes the pager control. Hidden is set when everything
// fits on one page.
type Pagination struct {
	Hidden  bool        `json:"hidden"`
	Current int         `json:"current"`
	Total   int         `json:"total"`
	Prev    PageControl `json:"prev"`
	Next    PageControl `json:"next"`
	Entries []PageEntry `json:"entries"`
}

// PageControl is a previous/next button.
type PageControl struct {
	Page     int  `json:"page"`
	Disabled bool `json:"disabled"`
}

// PageEntry is a numbered page link or an ellipsis gap.
type PageEntry struct {
	Page     int  `json:"page,omitempty"`
	Active   bool `json:"active,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// RenderOptions carries presentation settings that are not part of the state.
type RenderOptions struct {
	Loaded      bool
	PageSizes   []int
	Placeholder string
}

// Render derives the table view from a state snapshot.
func Render(s ViewState, opts RenderOptions) View {
	filtered := s.Filtered()
	n := len(filtered)
	start, end := s.Bounds(n)

	rows := make([]Row, 0, end-start)
	for _, p := range filtered[start:end] {
		rows = append(rows, renderRow(p, opts.Placeholder))
	}

	v := View{
		Loaded:     opts.Loaded,
		Rows:       rows,
		Pagination: renderPagination(s.CurrentPage(n), s.TotalPages(n)),
		Query:      s.Query,
		SortKey:    s.SortKey,
		SortDir:    s.SortDir,
		PageSize:   s.PageSize,
		PageSizes:  opts.PageSizes,
		Total:      n,
	}
	if n > 0 {
		v.First = start + 1
		v.Last = end
	}
	v.Summary = fmt.Sprintf("Showing %d-%d of %d products", v.First, v.Last, n)
	return v
}

func renderRow(p Product, placeholder string) Row {
	r := Row{
		ID:            p.ID,
		Title:         p.Title,
		Price:         FormatPrice(p),
		Category:      p.CategoryName(),
		CategoryColor: CategoryColor(p.CategoryID()),
		Tooltip:       p.Description,
		Thumbnail:     placeholder,
	}
	if r.Category == "" {
		r.Category = "N/A"
	}
	if r.Tooltip == "" {
		r.Tooltip = "No description"
	}
	if len(p.Images) > 0 {
		if u := CleanImageURL(p.Images[0]); IsImageURL(u) {
			r.Thumbnail = u
			r.HasImage = true
		}
	}
	return r
}

// renderPagination lists the first page, the last page and the pages within
// paginationWindow of the current one, with ellipsis entries at the window
// edges.
func renderPagination(current, total int) Pagination {
	p := Pagination{
		Current: current,
		Total:   total,
		Prev:    PageControl{Page: current - 1, Disabled: current <= 1},
		Next:    PageControl{Page: current + 1, Disabled: current >= total},
	}
	if total <= 1 {
		p.Hidden = true
		return p
	}

	for i := 1; i <= total; i++ {
		switch {
		case i == 1 || i == total || (i >= current-paginationWindow && i <= current+paginationWindow):
			p.Entries = append(p.Entries, PageEntry{Page: i, Active: i == current})
		case i == current-paginationWindow-1 || i == current+paginationWindow+1:
			p.Entries = append(p.Entries, PageEntry{Ellipsis: true})
		}
	}
	return p
}

// FormatPrice renders a price as dollars with two decimals.
func FormatPrice(p Product) string {
	return "$" + p.Price.StringFixed(2)
}

// CategoryColor picks a badge color for a category id.
func CategoryColor(id int) string {
	if id < 0 {
		id = -id
	}
	return categoryPalette[id%len(categoryPalette)]
}

// CleanImageURL strips the bracket and quote debris some catalog records carry
// around their image URLs (e.g. `["https://..."]`).
func CleanImageURL(u string) string {
	return strings.TrimSpace(strings.NewReplacer("[", "", "]", "", `"`, "").Replace(u))
}

// ProductDetail is the model for the detail/edit form.
type ProductDetail struct {
	ID          int
	Title       string
	Price       string
	Description string
	CategoryID  int
	Images      []string // cleaned, for the carousel; placeholder when empty
	ImagesText  string   // cleaned, one per line, for the textarea
	Categories  []Category
}

// NewProductDetail builds the edit form model for p.
func NewProductDetail(p Product, categories []Category, placeholder string) ProductDetail {
	cleaned := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if u := CleanImageURL(img); u != "" {
			cleaned = append(cleaned, u)
		}
	}

	carousel := cleaned
	if len(carousel) == 0 {
		carousel = []string{placeholder}
	}

	return ProductDetail{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price.String(),
		Description: p.Description,
		CategoryID:  p.CategoryID(),
		Images:      carousel,
		ImagesText:  strings.Join(cleaned, "\n"),
		Categories:  categories,
	}
}
