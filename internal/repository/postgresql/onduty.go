package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/onduty"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type onDutyRepository struct {
	db *database.DB
}

func NewOnDutyRepository(db *database.DB) onduty.Repository {
	return &onDutyRepository{db: db}
}

const onDutyColumns = `id, employee_id, date, reason, scheduled_by, materialized, created_at`

func scanOnDutyRow(row pgx.Row, a *onduty.Assignment) error {
	return row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Reason,
		&a.ScheduledBy, &a.Materialized, &a.CreatedAt,
	)
}

// Create implements onduty.Repository.
func (o *onDutyRepository) Create(ctx context.Context, a onduty.Assignment) (onduty.Assignment, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO on_duty_assignments (id, employee_id, date, reason, scheduled_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, a.ID, a.EmployeeID, a.Date, a.Reason, a.ScheduledBy).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return onduty.Assignment{}, onduty.ErrAssignmentExists
		}
		return onduty.Assignment{}, fmt.Errorf("failed to create on-duty assignment: %w", err)
	}

	return a, nil
}

// GetByID implements onduty.Repository.
func (o *onDutyRepository) GetByID(ctx context.Context, id string) (onduty.Assignment, error) {
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + onDutyColumns + ` FROM on_duty_assignments WHERE id = $1`

	var a onduty.Assignment
	err := scanOnDutyRow(q.QueryRow(ctx, query, id), &a)
	if err != nil {
		if err == pgx.ErrNoRows {
			return onduty.Assignment{}, onduty.ErrAssignmentNotFound
		}
		return onduty.Assignment{}, fmt.Errorf("failed to get on-duty assignment: %w", err)
	}

	return a, nil
}

// FindByEmployeeAndDate implements onduty.Repository.
func (o *onDutyRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*onduty.Assignment, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT ` + onDutyColumns + `
		FROM on_duty_assignments
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var a onduty.Assignment
	err := scanOnDutyRow(q.QueryRow(ctx, query, employeeID, date), &a)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find on-duty assignment: %w", err)
	}

	return &a, nil
}

// ListPending implements onduty.Repository.
func (o *onDutyRepository) ListPending(ctx context.Context, upTo time.Time) ([]onduty.Assignment, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT ` + onDutyColumns + `
		FROM on_duty_assignments
		WHERE materialized = FALSE
		  AND date <= $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, upTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending on-duty assignments: %w", err)
	}
	defer rows.Close()

	var assignments []onduty.Assignment
	for rows.Next() {
		var a onduty.Assignment
		if err := scanOnDutyRow(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan on-duty assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// MarkMaterialized implements onduty.Repository.
func (o *onDutyRepository) MarkMaterialized(ctx context.Context, id string) error {
	q := GetQuerier(ctx, o.db)

	tag, err := q.Exec(ctx, `UPDATE on_duty_assignments SET materialized = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark on-duty assignment materialized: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return onduty.ErrAssignmentNotFound
	}

	return nil
}

// ListByDateRange implements onduty.Repository.
func (o *onDutyRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]onduty.Assignment, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT ` + onDutyColumns + `
		FROM on_duty_assignments
		WHERE date BETWEEN $1 AND $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list on-duty assignments: %w", err)
	}
	defer rows.Close()

	var assignments []onduty.Assignment
	for rows.Next() {
		var a onduty.Assignment
		if err := scanOnDutyRow(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan on-duty assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// Delete implements onduty.Repository.
func (o *onDutyRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, o.db)

	tag, err := q.Exec(ctx, `DELETE FROM on_duty_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete on-duty assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return onduty.ErrAssignmentNotFound
	}

	return nil
}
