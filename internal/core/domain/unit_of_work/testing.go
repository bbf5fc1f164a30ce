package uow

import (
	"context"
	"securecrop/internal/core/domain/auditlog"
	"securecrop/internal/core/domain/cyberlog"
	"securecrop/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository          *user.FakeUserRepository
	SessionRepository       *user.FakeSessionRepository
	PasswordResetRepository *user.FakePasswordResetRepository
	AdminLogRepository      *auditlog.FakeRepository
	CyberLogRepository      *cyberlog.FakeRepository
	WasRollbackCalled       bool
	WasCommitCalled         bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	sessionRepository *user.FakeSessionRepository,
	passwordResetRepository *user.FakePasswordResetRepository,
	adminLogRepository *auditlog.FakeRepository,
	cyberLogRepository *cyberlog.FakeRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:          userRepository,
		SessionRepository:       sessionRepository,
		PasswordResetRepository: passwordResetRepository,
		AdminLogRepository:      adminLogRepository,
		CyberLogRepository:      cyberLogRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) PasswordResetTokens() user.PasswordResetRepository {
	return c.PasswordResetRepository
}

func (c *FakeUnitOfWorkContext) AdminLogs() auditlog.Repository {
	return c.AdminLogRepository
}

func (c *FakeUnitOfWorkContext) CyberLogs() cyberlog.Repository {
	return c.CyberLogRepository
}

type FakeUnitOfWork struct {
	Context *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			userRepository,
			user.NewFakeSessionRepository(userRepository),
			user.NewFakePasswordResetRepository(),
			auditlog.NewFakeRepository(),
			cyberlog.NewFakeRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	return u.Context, nil
}
