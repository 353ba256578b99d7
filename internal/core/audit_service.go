package core

import (
	"context"
	"net"
	"net/netip"
	"time"

	db "github.com/JonMunkholm/catalog-admin/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService handles audit log operations against Postgres.
type AuditService struct {
	pool *pgxpool.Pool
}

// NewAuditService creates a new audit service.
func NewAuditService(pool *pgxpool.Pool) *AuditService {
	return &AuditService{pool: pool}
}

// Log creates a new audit log entry.
func (a *AuditService) Log(ctx context.Context, params AuditLogParams) (*AuditEntry, error) {
	insertParams := db.InsertAuditLogParams{
		ID:        pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Action:    string(params.Action),
		ProductID: int32(params.ProductID),
		Title:     toPgText(params.Title),
		IpAddress: parseIP(params.IPAddress),
		UserAgent: toPgText(params.UserAgent),
		RequestID: toPgText(params.RequestID),
	}

	row, err := db.New(a.pool).InsertAuditLog(ctx, insertParams)
	if err != nil {
		return nil, err
	}

	return auditRowToEntry(row), nil
}

// Recent returns the newest entries first.
func (a *AuditService) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}

	rows, err := db.New(a.pool).ListRecentAuditLog(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	entries := make([]AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, *auditRowToEntry(row))
	}
	return entries, nil
}

// PurgeOlderThan deletes entries created before cutoff.
func (a *AuditService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return db.New(a.pool).PurgeAuditLogBefore(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
}

// parseIP strips a port if present. Unparseable addresses are stored as NULL.
func parseIP(s string) *netip.Addr {
	if s == "" {
		return nil
	}
	host := s
	if h, _, err := net.SplitHostPort(s); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return nil
	}
	return &addr
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func auditRowToEntry(row db.AuditLog) *AuditEntry {
	entry := &AuditEntry{
		Action:    AuditAction(row.Action),
		ProductID: int(row.ProductID),
		CreatedAt: row.CreatedAt.Time,
	}
	if row.ID.Valid {
		entry.ID = uuid.UUID(row.ID.Bytes).String()
	}
	if row.Title.Valid {
		entry.Title = row.Title.String
	}
	if row.IpAddress != nil {
		entry.IPAddress = row.IpAddress.String()
	}
	if row.UserAgent.Valid {
		entry.UserAgent = row.UserAgent.String
	}
	if row.RequestID.Valid {
		entry.RequestID = row.RequestID.String
	}
	return entry
}
