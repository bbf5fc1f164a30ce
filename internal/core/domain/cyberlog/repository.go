package cyberlog

import (
	"context"
	c "securecrop/internal/core/domain/common"
	"time"
)

type CreateInput struct {
	SoilInputID     c.Optional[int64]
	AnomalyDetected bool
	IntegrityStatus IntegrityStatus
	Details         string
	CreatedAt       time.Time
}

type ListFilter struct {
	AnomalyDetected c.Optional[bool]
	IntegrityStatus c.Optional[IntegrityStatus]
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	GetStats(ctx context.Context) (Stats, error)
}

// EventStream pushes freshly recorded security events to connected admin
// dashboards.
type EventStream interface {
	PublishRecord(ctx context.Context, record Record) error
}
