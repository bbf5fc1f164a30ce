package auditlog

import (
	"context"
	"securecrop/internal/core/domain/auditlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/db"
)

type PgxRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: db}
}

func (r *PgxRepository) Create(ctx context.Context, input auditlog.CreateInput) (rec auditlog.Record, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO admin_log (admin_id, action, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		int64(input.AdminID),
		input.Action,
		input.CreatedAt,
	)
	if err := row.Scan(&rec.ID); err != nil {
		return rec, err
	}
	rec.AdminID = input.AdminID
	rec.Action = input.Action
	rec.CreatedAt = input.CreatedAt
	return rec, nil
}

func (r *PgxRepository) List(ctx context.Context) ([]auditlog.Record, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT l.id, l.admin_id, u.username, u.email, l.action, l.created_at
		FROM admin_log l
		JOIN "user" u ON u.id = l.admin_id
		ORDER BY l.created_at DESC, l.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]auditlog.Record, 0)
	for rows.Next() {
		var rec auditlog.Record
		var adminID int64
		err := rows.Scan(&rec.ID, &adminID, &rec.AdminUsername, &rec.AdminEmail, &rec.Action, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		rec.AdminID = user.ID(adminID)
		records = append(records, rec)
	}
	return records, rows.Err()
}
