package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTMXSource is the pinned htmx build loaded by every page.
const HTMXSource = "https://unpkg.com/htmx.org@1.9.12"

// Layout wraps body in the page shell: head, navigation, modal slot and
// toast container.
func Layout(title, active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title + " · Catalog Admin")
		h.raw(`</title><link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script src="` + HTMXSource + `" crossorigin="anonymous"></script>`)
		h.raw(`<script src="/static/app.js" defer></script></head><body>`)

		h.raw(`<nav class="nav"><span class="brand">Catalog Admin</span>`)
		navLink(h, "/", "Products", active == "products")
		navLink(h, "/audit-log", "Audit log", active == "audit")
		h.raw(`</nav><main class="container">`)
		h.render(ctx, body)
		h.raw(`</main><div id="modal"></div><div id="toasts" class="toasts" aria-live="polite"></div>`)
		h.raw(`</body></html>`)
		return h.err
	})
}

func navLink(h *html, href, label string, active bool) {
	h.raw(`<a`)
	h.url("href", href)
	if active {
		h.attr("class", "active")
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</a>`)
}

// ErrorAlert renders an inline error message with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<div class="alert alert-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<p>`)
			h.text(action)
			h.raw(`</p>`)
		}
		if code != "" {
			h.raw(`<small>Code: `)
			h.text(code)
			h.raw(`</small>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
