package core

import (
	"context"
	"time"
)

// DefaultAuditLimit caps audit log queries that do not set a limit.
const DefaultAuditLimit = 100

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	ProductID int         `json:"productId"`
	Title     string      `json:"title,omitempty"`
	IPAddress string      `json:"ipAddress,omitempty"`
	UserAgent string      `json:"userAgent,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action    AuditAction
	ProductID int
	Title     string
	IPAddress string
	UserAgent string
	RequestID string
}

// AuditStore persists audit entries. AuditService is the Postgres
// implementation; NopAuditStore is used when no database is configured.
type AuditStore interface {
	Log(ctx context.Context, params AuditLogParams) (*AuditEntry, error)
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NopAuditStore discards entries.
type NopAuditStore struct{}

func (NopAuditStore) Log(_ context.Context, p AuditLogParams) (*AuditEntry, error) {
	return &AuditEntry{Action: p.Action, ProductID: p.ProductID, Title: p.Title, CreatedAt: time.Now()}, nil
}

func (NopAuditStore) Recent(context.Context, int) ([]AuditEntry, error) { return nil, nil }

func (NopAuditStore) PurgeOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

// auditParamsFromContext fills the caller fields of an audit entry.
func auditParamsFromContext(ctx context.Context, action AuditAction, p Product) AuditLogParams {
	meta := RequestMetaFromContext(ctx)
	return AuditLogParams{
		Action:    action,
		ProductID: p.ID,
		Title:     p.Title,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		RequestID: meta.RequestID,
	}
}
