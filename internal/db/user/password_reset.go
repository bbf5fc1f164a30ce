package user

import (
	"context"
	"errors"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/db"

	"github.com/jackc/pgx/v4"
)

const passwordResetColumns = `token, user_id, created_at, expires_at, used`

type PgxPasswordResetRepository struct {
	db db.Queryable
}

func NewPgxPasswordResetRepository(db db.Queryable) *PgxPasswordResetRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPasswordResetRepository{db: db}
}

func (r *PgxPasswordResetRepository) Create(
	ctx context.Context,
	input user.CreatePasswordResetInput,
) (p user.PasswordReset, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO password_reset_token (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+passwordResetColumns,
		string(input.Token),
		int64(input.UserID),
		input.CreatedAt,
		input.ExpiresAt,
	)
	return decodePasswordReset(row)
}

func (r *PgxPasswordResetRepository) GetByToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (p user.PasswordReset, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+passwordResetColumns+` FROM password_reset_token WHERE token = $1`,
		string(token),
	)
	p, err = decodePasswordReset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, user.ErrPasswordResetTokenDoesNotExist
	}
	return p, err
}

func (r *PgxPasswordResetRepository) GetByTokenWithLock(
	ctx context.Context,
	token user.PasswordResetToken,
) (p user.PasswordReset, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+passwordResetColumns+` FROM password_reset_token WHERE token = $1 FOR UPDATE`,
		string(token),
	)
	p, err = decodePasswordReset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, user.ErrPasswordResetTokenDoesNotExist
	}
	return p, err
}

func (r *PgxPasswordResetRepository) MarkUsed(ctx context.Context, token user.PasswordResetToken) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE password_reset_token SET used = TRUE WHERE token = $1`,
		string(token),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrPasswordResetTokenDoesNotExist
	}
	return nil
}

func (r *PgxPasswordResetRepository) MarkAllUsedForUser(
	ctx context.Context,
	userID user.ID,
) (count int64, err error) {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE password_reset_token SET used = TRUE WHERE user_id = $1 AND NOT used`,
		int64(userID),
	)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

func decodePasswordReset(row pgx.Row) (p user.PasswordReset, err error) {
	var token string
	err = row.Scan(&token, &p.UserID, &p.CreatedAt, &p.ExpiresAt, &p.Used)
	if err != nil {
		return p, err
	}
	p.Token = user.PasswordResetToken(token)
	return p, nil
}
