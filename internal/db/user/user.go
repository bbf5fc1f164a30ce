package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	c "securecrop/internal/core/domain/common"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/db"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, email, username, password_hash, role, is_active, created_at,
	last_login_at, phone_number, location_lat, location_lon,
	receive_email_alerts, receive_sms_alerts, profile_picture`

type PgxUserRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, username, password_hash, role, is_active, created_at,
			receive_email_alerts, receive_sms_alerts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+userColumns,
		string(input.Email),
		input.Username,
		string(input.PasswordHash),
		string(input.Role),
		input.IsActive,
		input.CreatedAt,
		input.ReceiveEmailAlerts,
		input.ReceiveSMSAlerts,
	)
	u, err = decodeUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	return u, err
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM "user" ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := decodeUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	assignments := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	args = append(args, int64(input.ID))

	addAssignment := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if input.DoUsernameUpdate {
		addAssignment("username", input.Username)
	}
	if input.DoPhoneNumberUpdate {
		addAssignment("phone_number", encodeOptionalString(input.PhoneNumber))
	}
	if input.DoLocationUpdate {
		addAssignment("location_lat", encodeOptionalFloat(input.LocationLat))
		addAssignment("location_lon", encodeOptionalFloat(input.LocationLon))
	}
	if input.DoReceiveEmailAlertsUpdate {
		addAssignment("receive_email_alerts", input.ReceiveEmailAlerts)
	}
	if input.DoReceiveSMSAlertsUpdate {
		addAssignment("receive_sms_alerts", input.ReceiveSMSAlerts)
	}
	if len(assignments) == 0 {
		return r.GetByID(ctx, input.ID)
	}

	row := r.db.QueryRow(
		ctx,
		fmt.Sprintf(
			`UPDATE "user" SET %s WHERE id = $1 RETURNING %s`,
			strings.Join(assignments, ", "),
			userColumns,
		),
		args...,
	)
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2 WHERE id = $1`,
		int64(id),
		string(password),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetLastLogin(ctx context.Context, id user.ID, at time.Time) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET last_login_at = $2 WHERE id = $1`,
		int64(id),
		at,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetActive(ctx context.Context, id user.ID, isActive bool) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET is_active = $2 WHERE id = $1 RETURNING `+userColumns,
		int64(id),
		isActive,
	)
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func encodeOptionalString(v c.Optional[string]) sql.NullString {
	return sql.NullString{String: v.Value, Valid: v.IsPresent}
}

func encodeOptionalFloat(v c.Optional[float64]) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Value, Valid: v.IsPresent}
}

func decodeUser(row pgx.Row) (u user.User, err error) {
	var (
		email          string
		role           string
		passwordHash   string
		lastLoginAt    sql.NullTime
		phoneNumber    sql.NullString
		locationLat    sql.NullFloat64
		locationLon    sql.NullFloat64
		profilePicture sql.NullString
	)
	err = row.Scan(
		&u.ID,
		&email,
		&u.Username,
		&passwordHash,
		&role,
		&u.IsActive,
		&u.CreatedAt,
		&lastLoginAt,
		&phoneNumber,
		&locationLat,
		&locationLon,
		&u.ReceiveEmailAlerts,
		&u.ReceiveSMSAlerts,
		&profilePicture,
	)
	if err != nil {
		return u, err
	}
	u.Email = c.Email(email)
	u.Role = user.Role(role)
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.LastLoginAt = c.NewOptional(lastLoginAt.Time, lastLoginAt.Valid)
	u.PhoneNumber = c.NewOptional(phoneNumber.String, phoneNumber.Valid)
	u.LocationLat = c.NewOptional(locationLat.Float64, locationLat.Valid)
	u.LocationLon = c.NewOptional(locationLon.Float64, locationLon.Valid)
	u.ProfilePicture = c.NewOptional(profilePicture.String, profilePicture.Valid)
	return u, nil
}
