package cyberlog

import (
	"context"
	"fmt"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/cyberlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/db"
	"strings"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const cyberLogColumns = `id, soil_input_id, anomaly_detected, integrity_status, details, created_at`

type PgxRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: db}
}

func (r *PgxRepository) Create(ctx context.Context, input cyberlog.CreateInput) (rec cyberlog.Record, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO cyber_log (soil_input_id, anomaly_detected, integrity_status, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+cyberLogColumns,
		encodeOptionalInt(input.SoilInputID),
		input.AnomalyDetected,
		string(input.IntegrityStatus),
		input.Details,
		input.CreatedAt,
	)
	return decodeRecord(row)
}

func (r *PgxRepository) List(ctx context.Context, filter cyberlog.ListFilter) ([]cyberlog.Record, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if filter.AnomalyDetected.IsPresent {
		args = append(args, filter.AnomalyDetected.Value)
		conditions = append(conditions, fmt.Sprintf("anomaly_detected = $%d", len(args)))
	}
	if filter.IntegrityStatus.IsPresent {
		args = append(args, string(filter.IntegrityStatus.Value))
		conditions = append(conditions, fmt.Sprintf("integrity_status = $%d", len(args)))
	}
	query := `SELECT ` + cyberLogColumns + ` FROM cyber_log`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]cyberlog.Record, 0)
	for rows.Next() {
		rec, err := decodeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PgxRepository) GetStats(ctx context.Context) (stats cyberlog.Stats, err error) {
	var total, anomalies int64
	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE anomaly_detected) FROM cyber_log`,
	).Scan(&total, &anomalies)
	if err != nil {
		return stats, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT integrity_status, COUNT(*) FROM cyber_log
		GROUP BY integrity_status
		ORDER BY integrity_status`,
	)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	breakdown := make([]cyberlog.StatusCount, 0)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		breakdown = append(breakdown, cyberlog.StatusCount{
			IntegrityStatus: cyberlog.IntegrityStatus(status),
			Count:           count,
		})
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}
	return cyberlog.NewStats(total, anomalies, breakdown), nil
}

func encodeOptionalInt(v c.Optional[int64]) pgtype.Int8 {
	status := pgtype.Null
	if v.IsPresent {
		status = pgtype.Present
	}
	return pgtype.Int8{Int: v.Value, Status: status}
}

func decodeRecord(row pgx.Row) (rec cyberlog.Record, err error) {
	var soilInputID pgtype.Int8
	var status string
	err = row.Scan(&rec.ID, &soilInputID, &rec.AnomalyDetected, &status, &rec.Details, &rec.CreatedAt)
	if err != nil {
		return rec, err
	}
	rec.SoilInputID = c.NewOptional(soilInputID.Int, soilInputID.Status == pgtype.Present)
	rec.IntegrityStatus = cyberlog.IntegrityStatus(status)
	return rec, nil
}
