package uow

import (
	"context"
	"securecrop/internal/core/domain/auditlog"
	"securecrop/internal/core/domain/cyberlog"
	e "securecrop/internal/core/domain/errors"
	uow "securecrop/internal/core/domain/unit_of_work"
	"securecrop/internal/core/domain/user"
	dbauditlog "securecrop/internal/db/auditlog"
	dbcyberlog "securecrop/internal/db/cyberlog"
	dbuser "securecrop/internal/db/user"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type pgxUnitOfWorkContext struct {
	tx pgx.Tx
}

func newPgxUnitOfWorkContext(tx pgx.Tx) *pgxUnitOfWorkContext {
	return &pgxUnitOfWorkContext{
		tx: tx,
	}
}

func (c *pgxUnitOfWorkContext) Commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

func (c *pgxUnitOfWorkContext) Rollback(ctx context.Context) error {
	return c.tx.Rollback(ctx)
}

func (c *pgxUnitOfWorkContext) Users() user.UserRepository {
	return dbuser.NewPgxRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) Sessions() user.SessionRepository {
	return dbuser.NewPgxSessionRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) PasswordResetTokens() user.PasswordResetRepository {
	return dbuser.NewPgxPasswordResetRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) AdminLogs() auditlog.Repository {
	return dbauditlog.NewPgxRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) CyberLogs() cyberlog.Repository {
	return dbcyberlog.NewPgxRepository(c.tx)
}

type PgxUnitOfWork struct {
	db *pgxpool.Pool
}

func NewPgxUnitOfWork(db *pgxpool.Pool) *PgxUnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUnitOfWork{db: db}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return newPgxUnitOfWorkContext(tx), nil
}
