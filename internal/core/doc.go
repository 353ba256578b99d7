// Package core provides the business logic for the catalog admin panel.
//
// The package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification; the remote catalog is reached through the [CatalogClient]
// interface.
//
// # Architecture
//
//   - View Model: [ViewModel] keeps the working copy of every product plus the
//     view cursor (filter query, sort key and direction, page, page size).
//     View commands are applied with [ViewModel.Dispatch].
//   - Rendering: [Render] turns a [ViewState] snapshot into a [View] with
//     display-ready rows, pagination controls and the summary line.
//   - Service: [Service] is the main entry point. It loads the catalog,
//     validates and submits mutations, and exports the visible page.
//   - Audit: successful creates and updates are recorded through an
//     [AuditStore]; [AuditService] persists them in PostgreSQL.
//
// # View Commands
//
// Commands that cannot apply are no-ops rather than errors:
//
//	vm.Dispatch(core.Filter("shirt"))    // resets to page 1
//	vm.Dispatch(core.Sort(core.SortPrice)) // same key toggles direction
//	vm.Dispatch(core.SetPageSize(20))    // resets to page 1
//	vm.Dispatch(core.GoToPage(3))        // ignored when out of range
//
// # Mutations
//
// Create and update validate the form first; a [ValidationError] never reaches
// the network. Remote calls are bounded by a [MutationLimiter], and updates of
// the same product id are serialized. The working copy changes only after the
// remote call succeeds: a created product is prepended, an update is
// shallow-merged into the existing record.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - API001-API006: Remote catalog errors (unreachable, timeout, rejected)
//   - VAL001-VAL005: Validation errors
//   - MUT001-MUT004: Mutation errors (busy, not found, not loaded)
//   - EXP001: Export errors
//
// Every user-facing operation also returns a [Notification] for the toast
// shown in the browser.
//
// # Audit Logging
//
// Audit failures are logged and never fail the mutation. Entries older than
// the configured retention are purged by [Service.StartAuditRetention].
package core
