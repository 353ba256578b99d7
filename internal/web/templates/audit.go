package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// AuditLogViewParams drives the audit log page.
type AuditLogViewParams struct {
	Entries []core.AuditEntry
	Enabled bool
	Limit   int
}

// AuditLogPage renders the full audit log screen.
func AuditLogPage(p AuditLogViewParams) templ.Component {
	return Layout("Audit log", "audit", AuditLogTable(p))
}

// AuditLogTable renders recent audit entries, newest first.
func AuditLogTable(p AuditLogViewParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section id="audit-log"><h1>Audit log</h1>`)

		if !p.Enabled {
			h.raw(`<p class="empty">Audit logging is disabled. Set DATABASE_URL to record changes.</p></section>`)
			return h.err
		}

		h.raw(`<p class="summary">Showing the latest `)
		h.text(itoa(len(p.Entries)))
		h.raw(` entries</p>`)
		h.raw(`<table class="audit"><thead><tr><th>When</th><th>Action</th><th>Product</th><th>Title</th><th>IP</th><th>Request</th></tr></thead><tbody>`)
		if len(p.Entries) == 0 {
			h.raw(`<tr><td colspan="6" class="empty">No changes recorded yet</td></tr>`)
		}
		for _, e := range p.Entries {
			h.raw(`<tr><td>`)
			h.text(e.CreatedAt.Local().Format(time.DateTime))
			h.raw(`</td><td><span class="badge badge-`)
			h.text(string(e.Action))
			h.raw(`">`)
			h.text(string(e.Action))
			h.raw(`</span></td><td>`)
			h.text(itoa(e.ProductID))
			h.raw(`</td><td>`)
			h.text(e.Title)
			h.raw(`</td><td>`)
			h.text(e.IPAddress)
			h.raw(`</td><td><code>`)
			h.text(e.RequestID)
			h.raw(`</code></td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}
