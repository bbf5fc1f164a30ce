package response

import (
	"securecrop/internal/core/domain/auditlog"
	"time"
)

type AdminLogRecord struct {
	ID            int64     `json:"id"`
	AdminID       int64     `json:"admin_id"`
	AdminUsername string    `json:"admin_username"`
	AdminEmail    string    `json:"admin_email"`
	Action        string    `json:"action"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *AdminLogRecord) FromDomainRecord(rec auditlog.Record) {
	r.ID = int64(rec.ID)
	r.AdminID = int64(rec.AdminID)
	r.AdminUsername = rec.AdminUsername
	r.AdminEmail = rec.AdminEmail
	r.Action = rec.Action
	r.CreatedAt = rec.CreatedAt
}
