package auditlog

import (
	"securecrop/internal/core/domain/user"
	"time"
)

type ID int64

// Record is an append-only trace of an administrative action. Records are
// never updated or deleted.
type Record struct {
	ID            ID
	AdminID       user.ID
	AdminUsername string
	AdminEmail    string
	Action        string
	CreatedAt     time.Time
}
