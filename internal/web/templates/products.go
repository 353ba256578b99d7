package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// CatalogID is the element swapped by every view command.
const CatalogID = "catalog"

// ProductsPage is the full products screen.
func ProductsPage(v core.View) templ.Component {
	return Layout("Products", "products", Catalog(v))
}

// Catalog renders the toolbar, table, pagination and summary for v. It is the
// swap target for all view commands.
func Catalog(v core.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section id="` + CatalogID + `" class="catalog">`)
		toolbar(h, v)

		if !v.Loaded {
			h.raw(`<div class="empty">`)
			h.raw(`<p>The catalog has not been loaded.</p>`)
			h.raw(`<button class="btn" hx-post="/products/reload" hx-target="#` + CatalogID + `" hx-swap="outerHTML">Reload</button>`)
			h.raw(`</div></section>`)
			return h.err
		}

		table(h, v)
		pagination(h, v.Pagination)
		h.raw(`<p class="summary">`)
		h.text(v.Summary)
		h.raw(`</p></section>`)
		return h.err
	})
}

func toolbar(h *html, v core.View) {
	h.raw(`<div class="toolbar">`)
	h.raw(`<input type="search" name="q" placeholder="Search by title…" autocomplete="off"`)
	h.attr("value", v.Query)
	h.raw(` hx-post="/products/search" hx-trigger="input changed delay:300ms, search"`)
	h.raw(` hx-target="#` + CatalogID + `" hx-swap="outerHTML" hx-sync="this:replace">`)

	h.raw(`<label>Rows <select name="size" hx-post="/products/page-size" hx-trigger="change"`)
	h.raw(` hx-target="#` + CatalogID + `" hx-swap="outerHTML">`)
	for _, size := range v.PageSizes {
		h.raw(`<option`)
		h.attr("value", itoa(size))
		if size == v.PageSize {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(itoa(size))
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)

	h.raw(`<span class="spacer"></span>`)
	h.raw(`<button class="btn" hx-post="/products/reload" hx-target="#` + CatalogID + `" hx-swap="outerHTML">Reload</button>`)
	h.raw(`<button class="btn" hx-post="/products/export" hx-swap="none">Export CSV</button>`)
	h.raw(`<button class="btn btn-primary" hx-get="/products/new" hx-target="#modal">New product</button>`)
	h.raw(`</div>`)
}

func table(h *html, v core.View) {
	h.raw(`<table class="products"><thead><tr><th>ID</th><th>Image</th>`)
	sortHeader(h, v, core.SortTitle, "Title")
	sortHeader(h, v, core.SortPrice, "Price")
	h.raw(`<th>Category</th></tr></thead><tbody>`)

	if len(v.Rows) == 0 {
		h.raw(`<tr><td colspan="5" class="empty">No products found</td></tr>`)
	}
	for _, r := range v.Rows {
		h.raw(`<tr class="row"`)
		h.attr("hx-get", "/products/"+itoa(r.ID))
		h.raw(` hx-target="#modal"`)
		h.attr("title", r.Tooltip)
		h.raw(`><td>`)
		h.text(itoa(r.ID))
		h.raw(`</td><td><img class="thumb" loading="lazy" alt=""`)
		h.url("src", r.Thumbnail)
		h.raw(`></td><td>`)
		h.text(r.Title)
		h.raw(`</td><td class="num">`)
		h.text(r.Price)
		h.raw(`</td><td><span class="badge"`)
		h.attr("style", "background:"+r.CategoryColor)
		h.raw(`>`)
		h.text(r.Category)
		h.raw(`</span></td></tr>`)
	}
	h.raw(`</tbody></table>`)
}

func sortHeader(h *html, v core.View, field core.SortField, label string) {
	h.raw(`<th class="sortable"`)
	h.attr("hx-post", "/products/sort/"+string(field))
	h.raw(` hx-target="#` + CatalogID + `" hx-swap="outerHTML">`)
	h.text(label)
	if v.SortKey == field {
		if v.SortDir == core.SortDesc {
			h.raw(` ▼`)
		} else {
			h.raw(` ▲`)
		}
	}
	h.raw(`</th>`)
}

func pagination(h *html, p core.Pagination) {
	if p.Hidden {
		return
	}
	h.raw(`<nav class="pagination" aria-label="Pagination">`)
	pageButton(h, p.Prev, "Previous")
	for _, e := range p.Entries {
		if e.Ellipsis {
			h.raw(`<span class="gap">…</span>`)
			continue
		}
		h.raw(`<button`)
		h.attr("hx-post", "/products/page/"+itoa(e.Page))
		h.raw(` hx-target="#` + CatalogID + `" hx-swap="outerHTML"`)
		if e.Active {
			h.raw(` class="active" aria-current="page"`)
		}
		h.raw(`>`)
		h.text(itoa(e.Page))
		h.raw(`</button>`)
	}
	pageButton(h, p.Next, "Next")
	h.raw(`</nav>`)
}

func pageButton(h *html, c core.PageControl, label string) {
	h.raw(`<button`)
	if c.Disabled {
		h.raw(` disabled`)
	} else {
		h.attr("hx-post", "/products/page/"+itoa(c.Page))
		h.raw(` hx-target="#` + CatalogID + `" hx-swap="outerHTML"`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</button>`)
}
