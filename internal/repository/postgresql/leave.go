package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/leave"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	id, employee_id, type, start_date, end_date, reason, status,
	decided_by, decided_at, rejection_reason, created_at, updated_at
`

func scanLeaveRow(row pgx.Row, rec *leave.LeaveRecord) error {
	return row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Type, &rec.StartDate, &rec.EndDate,
		&rec.Reason, &rec.Status, &rec.DecidedBy, &rec.DecidedAt,
		&rec.RejectionReason, &rec.CreatedAt, &rec.UpdatedAt,
	)
}

// Create implements leave.Repository.
func (l *leaveRepository) Create(ctx context.Context, rec leave.LeaveRecord) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_records (
			id, employee_id, type, start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Type, rec.StartDate, rec.EndDate,
		rec.Reason, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	return rec, nil
}

// GetByID implements leave.Repository.
func (l *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_records WHERE id = $1`

	var rec leave.LeaveRecord
	err := scanLeaveRow(q.QueryRow(ctx, query, id), &rec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRecord{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRecord{}, fmt.Errorf("failed to get leave record: %w", err)
	}

	return rec, nil
}

// ListByEmployee implements leave.Repository.
func (l *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records
		WHERE employee_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		if err := scanLeaveRow(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// List implements leave.Repository.
func (l *leaveRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRecord, int64, error) {
	q := GetQuerier(ctx, l.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM leave_records lr
		` + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date,
		       lr.reason, lr.status, lr.decided_by, lr.decided_at,
		       lr.rejection_reason, lr.created_at, lr.updated_at,
		       e.full_name
		FROM leave_records lr
		JOIN employees e ON e.id = lr.employee_id
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Type, &rec.StartDate, &rec.EndDate,
			&rec.Reason, &rec.Status, &rec.DecidedBy, &rec.DecidedAt,
			&rec.RejectionReason, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

// Update implements leave.Repository.
func (l *leaveRepository) Update(ctx context.Context, rec leave.LeaveRecord) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_records SET
			type             = $2,
			start_date       = $3,
			end_date         = $4,
			reason           = $5,
			status           = $6,
			decided_by       = $7,
			decided_at       = $8,
			rejection_reason = $9,
			updated_at       = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID, rec.Type, rec.StartDate, rec.EndDate, rec.Reason,
		rec.Status, rec.DecidedBy, rec.DecidedAt, rec.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// Delete implements leave.Repository.
func (l *leaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// FindActiveOverlap implements leave.Repository.
func (l *leaveRepository) FindActiveOverlap(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRecord, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $2
		  AND end_date >= $2
		LIMIT 1
	`

	var rec leave.LeaveRecord
	err := scanLeaveRow(q.QueryRow(ctx, query, employeeID, day), &rec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active leave: %w", err)
	}

	return &rec, nil
}

// HasIntervalOverlap implements leave.Repository. Intervals are inclusive on
// both ends; rejected applications never block.
func (l *leaveRepository) HasIntervalOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_records
			WHERE employee_id = $1
			  AND status <> 'rejected'
			  AND start_date <= $3
			  AND end_date >= $2
			  AND ($4::text IS NULL OR id <> $4)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}
