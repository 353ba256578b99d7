package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleView() core.View {
	return core.View{
		Loaded: true,
		Rows: []core.Row{{
			ID:            1,
			Title:         `<script>alert("x")</script>`,
			Price:         "$9.99",
			Category:      "Clothes",
			CategoryColor: "#3498db",
			Thumbnail:     "https://img.example.com/1.png",
			Tooltip:       "No description",
		}},
		Pagination: core.Pagination{
			Current: 2,
			Total:   3,
			Prev:    core.PageControl{Page: 1},
			Next:    core.PageControl{Page: 3},
			Entries: []core.PageEntry{{Page: 1}, {Page: 2, Active: true}, {Page: 3}},
		},
		Summary:   "Showing 11-20 of 25 products",
		SortKey:   core.SortPrice,
		SortDir:   core.SortDesc,
		PageSize:  10,
		PageSizes: []int{5, 10},
	}
}

func TestCatalogEscapesContent(t *testing.T) {
	out := render(t, Catalog(sampleView()))

	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, `&lt;script&gt;`)
	assert.Contains(t, out, "Showing 11-20 of 25 products")
	assert.Contains(t, out, `id="catalog"`)
}

func TestCatalogControls(t *testing.T) {
	out := render(t, Catalog(sampleView()))

	assert.Contains(t, out, `hx-post="/products/page/3"`)
	assert.Contains(t, out, `aria-current="page"`)
	assert.Contains(t, out, `<option value="10" selected>`)
	assert.Contains(t, out, `hx-post="/products/sort/price"`)
	assert.Contains(t, out, "Price ▼")
	assert.Contains(t, out, `hx-get="/products/1"`)
	assert.Contains(t, out, `title="No description"`)
}

func TestCatalogHidesSinglePagePagination(t *testing.T) {
	v := sampleView()
	v.Pagination = core.Pagination{Hidden: true, Current: 1, Total: 1}

	out := render(t, Catalog(v))
	assert.NotContains(t, out, `class="pagination"`)
}

func TestCatalogNotLoaded(t *testing.T) {
	out := render(t, Catalog(core.View{}))
	assert.Contains(t, out, "has not been loaded")
	assert.Contains(t, out, `hx-post="/products/reload"`)
}

func TestProductsPageLayout(t *testing.T) {
	out := render(t, ProductsPage(sampleView()))
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, HTMXSource)
	assert.Contains(t, out, `<div id="modal"></div>`)
}

func TestProductModal(t *testing.T) {
	cats := []core.Category{{ID: 1, Name: "Clothes"}, {ID: 2, Name: "Shoes"}}

	create := render(t, ProductModal(ProductFormParams{Categories: cats}))
	assert.Contains(t, create, `hx-post="/products"`)
	assert.Contains(t, create, "New product")

	detail := &core.ProductDetail{
		ID:          4,
		Title:       "Boot",
		Price:       "49.9",
		CategoryID:  2,
		Images:      []string{"https://img.example.com/a.png", "javascript:alert(1)"},
		ImagesText:  "https://img.example.com/a.png",
		Description: "Leather",
	}
	edit := render(t, ProductModal(ProductFormParams{Detail: detail, Categories: cats}))
	assert.Contains(t, edit, `hx-put="/products/4"`)
	assert.Contains(t, edit, `value="Boot"`)
	assert.Contains(t, edit, `<option value="2" selected>`)
	assert.Contains(t, edit, `src="https://img.example.com/a.png"`)
	assert.NotContains(t, edit, "javascript:alert")
}

func TestAuditLogTable(t *testing.T) {
	out := render(t, AuditLogTable(AuditLogViewParams{}))
	assert.Contains(t, out, "Audit logging is disabled")

	out = render(t, AuditLogTable(AuditLogViewParams{
		Enabled: true,
		Entries: []core.AuditEntry{{Action: core.ActionUpdate, ProductID: 9, Title: "Lamp", RequestID: "abc"}},
	}))
	assert.Contains(t, out, "badge-update")
	assert.Contains(t, out, "Lamp")
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Bad <thing>", "Retry", "ERR000"))
	assert.Contains(t, out, "Bad &lt;thing&gt;")
	assert.Contains(t, out, "Code: ERR000")
}
