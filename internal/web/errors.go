package web

// errors.go provides unified error response handling for the web layer.
//
// Errors are logged with full technical detail and the request id, then
// returned in a form the client can use:
//   - htmx requests get a toast through HX-Trigger and no swap
//   - JSON clients get an ErrorResponse body
//   - everything else gets plain text
//
// Status codes follow the error type: validation failures are 422, missing
// records 404, a busy limiter 503 and remote failures 502.

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var ve *core.ValidationError
	var re *core.RemoteError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNotLoaded), errors.Is(err, core.ErrDuplicateProduct):
		return http.StatusConflict
	case errors.Is(err, core.ErrTooManyMutations):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &re):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError handles error responses with user-friendly messages.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	s.respondFailure(w, r, err, core.Failure(err, ""), statusCode)
}

// respondFailure logs err and reports n to the client. n carries the
// operation-specific wording chosen by the service.
func (s *Server) respondFailure(w http.ResponseWriter, r *http.Request, err error, n core.Notification, statusCode int) {
	logger := logging.WithFields(r.Context(),
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"code", n.Code,
	)
	level := slog.LevelError
	if statusCode < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	logger.Log(r.Context(), level, "request error", "error", err)

	switch {
	case isHTMX(r):
		setTrigger(w, n, false)
		w.WriteHeader(statusCode)
	case wantsJSON(r):
		respondErrorJSON(w, n, core.MapError(err).Action, statusCode)
	default:
		s.renderErrorPage(w, r, n, core.MapError(err).Action, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, n core.Notification, action string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   n.Message,
		Message: n.Message,
		Action:  action,
		Code:    n.Code,
	})
}

// renderErrorPage renders the error alert as a standalone fragment.
func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, n core.Notification, action string, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorAlert(n.Message, action, n.Code).Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render error alert", "error", err)
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
