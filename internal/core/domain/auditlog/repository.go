package auditlog

import (
	"context"
	"securecrop/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	AdminID   user.ID
	Action    string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Record, error)
	List(ctx context.Context) ([]Record, error)
}
