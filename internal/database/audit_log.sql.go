package database

import (
	"context"
	"net/netip"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertAuditLog = `-- name: InsertAuditLog :one
INSERT INTO audit_log (id, action, product_id, title, ip_address, user_agent, request_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, action, product_id, title, ip_address, user_agent, request_id, created_at
`

type InsertAuditLogParams struct {
	ID        pgtype.UUID
	Action    string
	ProductID int32
	Title     pgtype.Text
	IpAddress *netip.Addr
	UserAgent pgtype.Text
	RequestID pgtype.Text
}

func (q *Queries) InsertAuditLog(ctx context.Context, arg InsertAuditLogParams) (AuditLog, error) {
	row := q.db.QueryRow(ctx, insertAuditLog,
		arg.ID,
		arg.Action,
		arg.ProductID,
		arg.Title,
		arg.IpAddress,
		arg.UserAgent,
		arg.RequestID,
	)
	var i AuditLog
	err := row.Scan(
		&i.ID,
		&i.Action,
		&i.ProductID,
		&i.Title,
		&i.IpAddress,
		&i.UserAgent,
		&i.RequestID,
		&i.CreatedAt,
	)
	return i, err
}

const listRecentAuditLog = `-- name: ListRecentAuditLog :many
SELECT id, action, product_id, title, ip_address, user_agent, request_id, created_at
FROM audit_log
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListRecentAuditLog(ctx context.Context, limit int32) ([]AuditLog, error) {
	rows, err := q.db.Query(ctx, listRecentAuditLog, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AuditLog
	for rows.Next() {
		var i AuditLog
		if err := rows.Scan(
			&i.ID,
			&i.Action,
			&i.ProductID,
			&i.Title,
			&i.IpAddress,
			&i.UserAgent,
			&i.RequestID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const purgeAuditLogBefore = `-- name: PurgeAuditLogBefore :execrows
DELETE FROM audit_log WHERE created_at < $1
`

func (q *Queries) PurgeAuditLogBefore(ctx context.Context, before pgtype.Timestamptz) (int64, error) {
	result, err := q.db.Exec(ctx, purgeAuditLogBefore, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
