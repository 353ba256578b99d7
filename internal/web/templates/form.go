package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// ProductFormParams drives the create and edit modals.
type ProductFormParams struct {
	// Detail is nil for the create form.
	Detail     *core.ProductDetail
	Categories []core.Category
	// Form holds the values to redisplay after a rejected submission.
	Form core.ProductForm
}

// ProductModal renders the create or edit form inside a modal overlay.
func ProductModal(p ProductFormParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		editing := p.Detail != nil

		h.raw(`<div class="modal-backdrop"><div class="modal" role="dialog" aria-modal="true"><header>`)
		if editing {
			h.raw(`<h2>Product #`)
			h.text(itoa(p.Detail.ID))
			h.raw(`</h2>`)
		} else {
			h.raw(`<h2>New product</h2>`)
		}
		h.raw(`<button class="close" type="button" data-close-modal aria-label="Close">×</button></header>`)

		if editing {
			carousel(h, p.Detail.Images)
		}

		h.raw(`<form hx-target="#` + CatalogID + `" hx-swap="outerHTML"`)
		if editing {
			h.attr("hx-put", "/products/"+itoa(p.Detail.ID))
		} else {
			h.attr("hx-post", "/products")
		}
		h.raw(`>`)

		f := p.Form
		categoryID := f.CategoryID
		if editing && f == (core.ProductForm{}) {
			f = core.ProductForm{
				Title:       p.Detail.Title,
				Price:       p.Detail.Price,
				Description: p.Detail.Description,
				Images:      p.Detail.ImagesText,
			}
			categoryID = itoa(p.Detail.CategoryID)
		}

		field(h, "Title", "title", f.Title)
		h.raw(`<label>Price<input type="number" name="price" step="0.01" min="0.01" required`)
		h.attr("value", f.Price)
		h.raw(`></label>`)

		h.raw(`<label>Category<select name="categoryId">`)
		for _, c := range p.Categories {
			h.raw(`<option`)
			h.attr("value", itoa(c.ID))
			if itoa(c.ID) == categoryID {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(c.Name)
			h.raw(`</option>`)
		}
		h.raw(`</select></label>`)

		h.raw(`<label>Description<textarea name="description" rows="3" required>`)
		h.text(f.Description)
		h.raw(`</textarea></label>`)

		h.raw(`<label>Images <small>one URL per line</small><textarea name="images" rows="3">`)
		h.text(f.Images)
		h.raw(`</textarea></label>`)

		h.raw(`<footer><button type="button" class="btn" data-close-modal>Cancel</button>`)
		if editing {
			h.raw(`<button type="submit" class="btn btn-primary">Save changes</button>`)
		} else {
			h.raw(`<button type="submit" class="btn btn-primary">Create</button>`)
		}
		h.raw(`</footer></form></div></div>`)
		return h.err
	})
}

func field(h *html, label, name, value string) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<input type="text" required`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`></label>`)
}

func carousel(h *html, images []string) {
	h.raw(`<div class="carousel">`)
	for i, src := range images {
		h.raw(`<img loading="lazy"`)
		h.url("src", src)
		h.attr("alt", "Image "+itoa(i+1))
		h.raw(`>`)
	}
	h.raw(`</div>`)
}
