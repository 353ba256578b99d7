package database

import (
	"net/netip"

	"github.com/jackc/pgx/v5/pgtype"
)

type AuditLog struct {
	ID        pgtype.UUID
	Action    string
	ProductID int32
	Title     pgtype.Text
	IpAddress *netip.Addr
	UserAgent pgtype.Text
	RequestID pgtype.Text
	CreatedAt pgtype.Timestamptz
}
