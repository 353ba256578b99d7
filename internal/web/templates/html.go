// Package templates holds the HTML components for the catalog admin UI.
//
// Components are plain templ.Component values so they compose with templ's
// rendering and with handlers that call Render(ctx, w).
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// html writes markup to w, remembering the first write error so components
// can render straight through and report it once.
type html struct {
	w   io.Writer
	err error
}

func newHTML(w io.Writer) *html { return &html{w: w} }

// raw writes trusted markup.
func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// rawf writes formatted trusted markup. Arguments are NOT escaped.
func (h *html) rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// text writes escaped text content.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// url writes a URL attribute, dropping values templ considers unsafe.
func (h *html) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

// render writes a nested component into the same writer.
func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func itoa(i int) string { return strconv.Itoa(i) }
