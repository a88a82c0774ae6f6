package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/attendance"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date,
	time_in, break_out, break_in, time_out,
	scan_latitude, scan_longitude, is_out_of_range, on_duty,
	created_at, updated_at
`

func scanAttendanceRow(row pgx.Row, rec *attendance.DailyRecord) error {
	return row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date,
		&rec.TimeIn, &rec.BreakOut, &rec.BreakIn, &rec.TimeOut,
		&rec.ScanLatitude, &rec.ScanLongitude, &rec.IsOutOfRange, &rec.OnDuty,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
}

// Find implements attendance.Repository.
func (a *attendanceRepository) Find(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var rec attendance.DailyRecord
	err := scanAttendanceRow(q.QueryRow(ctx, query, employeeID, date), &rec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.DailyRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DailyRecord{}, fmt.Errorf("failed to find attendance record: %w", err)
	}

	return rec, nil
}

// Upsert implements attendance.Repository. The unique (employee_id, date)
// index makes two racing first scans converge on one row.
func (a *attendanceRepository) Upsert(ctx context.Context, rec attendance.DailyRecord) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date,
			time_in, break_out, break_in, time_out,
			scan_latitude, scan_longitude, is_out_of_range, on_duty
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			time_in         = EXCLUDED.time_in,
			break_out       = EXCLUDED.break_out,
			break_in        = EXCLUDED.break_in,
			time_out        = EXCLUDED.time_out,
			scan_latitude   = EXCLUDED.scan_latitude,
			scan_longitude  = EXCLUDED.scan_longitude,
			is_out_of_range = EXCLUDED.is_out_of_range,
			on_duty         = EXCLUDED.on_duty,
			updated_at      = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Date,
		rec.TimeIn, rec.BreakOut, rec.BreakIn, rec.TimeOut,
		rec.ScanLatitude, rec.ScanLongitude, rec.IsOutOfRange, rec.OnDuty,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE id = $1
	`

	var rec attendance.DailyRecord
	err := scanAttendanceRow(q.QueryRow(ctx, query, id), &rec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.DailyRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DailyRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.DailyRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("ar.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("ar.date >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("ar.date <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records ar
		JOIN employees e ON e.id = ar.employee_id
		` + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT ar.id, ar.employee_id, ar.date,
		       ar.time_in, ar.break_out, ar.break_in, ar.time_out,
		       ar.scan_latitude, ar.scan_longitude, ar.is_out_of_range, ar.on_duty,
		       ar.created_at, ar.updated_at,
		       e.full_name
		FROM attendance_records ar
		JOIN employees e ON e.id = ar.employee_id
		%s
		ORDER BY ar.date DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date,
			&rec.TimeIn, &rec.BreakOut, &rec.BreakIn, &rec.TimeOut,
			&rec.ScanLatitude, &rec.ScanLongitude, &rec.IsOutOfRange, &rec.OnDuty,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

// ListByEmployeeRange implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records by range: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		if err := scanAttendanceRow(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Delete implements attendance.Repository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}
