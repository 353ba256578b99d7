package core

import "context"

type contextKey string

const ctxKeyRequestMeta contextKey = "request_meta"

// RequestMeta describes the caller of a mutation for the audit log.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// ContextWithRequestMeta attaches caller details to ctx.
func ContextWithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, ctxKeyRequestMeta, m)
}

// RequestMetaFromContext extracts caller details, or the zero value.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if m, ok := ctx.Value(ctxKeyRequestMeta).(RequestMeta); ok {
		return m
	}
	return RequestMeta{}
}
