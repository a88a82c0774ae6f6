package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_number, full_name, department, position, employee_type,
	email, phone_number, hire_date, created_at, updated_at, deleted_at
`

func scanEmployeeRow(row pgx.Row, emp *employee.Employee) error {
	return row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FullName, &emp.Department,
		&emp.Position, &emp.EmployeeType, &emp.Email, &emp.PhoneNumber,
		&emp.HireDate, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements employee.Repository.
func (e *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, employee_number, full_name, department, position, employee_type,
			email, phone_number, hire_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID, emp.EmployeeNumber, emp.FullName, emp.Department,
		emp.Position, emp.EmployeeType, emp.Email, emp.PhoneNumber, emp.HireDate,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeNumberExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.Repository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := scanEmployeeRow(q.QueryRow(ctx, query, id), &emp)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByEmployeeNumber implements employee.Repository.
func (e *employeeRepository) GetByEmployeeNumber(ctx context.Context, number string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_number = $1
		  AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := scanEmployeeRow(q.QueryRow(ctx, query, number), &emp)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by number: %w", err)
	}

	return emp, nil
}

// List implements employee.Repository.
func (e *employeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"deleted_at IS NULL"}
	var args []interface{}
	argIdx := 1

	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR employee_number ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+employeeColumns+`
		FROM employees
		%s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployeeRow(rows, &emp); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, total, rows.Err()
}

// ListByDepartment implements employee.Repository.
func (e *employeeRepository) ListByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE department = $1
		  AND deleted_at IS NULL
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by department: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployeeRow(rows, &emp); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.Repository.
func (e *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees SET
			full_name     = $2,
			department    = $3,
			position      = $4,
			employee_type = $5,
			email         = $6,
			phone_number  = $7,
			updated_at    = NOW()
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		emp.ID, emp.FullName, emp.Department, emp.Position,
		emp.EmployeeType, emp.Email, emp.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.Repository.
func (e *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees SET
			deleted_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
