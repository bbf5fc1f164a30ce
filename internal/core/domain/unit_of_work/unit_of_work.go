package uow

import (
	"context"
	"securecrop/internal/core/domain/auditlog"
	"securecrop/internal/core/domain/cyberlog"
	"securecrop/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
	PasswordResetTokens() user.PasswordResetRepository
	AdminLogs() auditlog.Repository
	CyberLogs() cyberlog.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
