package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/department"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type departmentRepository struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.Repository {
	return &departmentRepository{db: db}
}

const departmentColumns = `id, name, latitude, longitude, created_at, updated_at`

func scanDepartmentRow(row pgx.Row, dept *department.Department) error {
	return row.Scan(
		&dept.ID, &dept.Name, &dept.Latitude, &dept.Longitude,
		&dept.CreatedAt, &dept.UpdatedAt,
	)
}

// Create implements department.Repository.
func (d *departmentRepository) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO departments (id, name, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, dept.ID, dept.Name, dept.Latitude, dept.Longitude).
		Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return dept, nil
}

// GetByID implements department.Repository.
func (d *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = $1`

	var dept department.Department
	err := scanDepartmentRow(q.QueryRow(ctx, query, id), &dept)
	if err != nil {
		if err == pgx.ErrNoRows {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return dept, nil
}

// GetByName implements department.Repository.
func (d *departmentRepository) GetByName(ctx context.Context, name string) (department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT ` + departmentColumns + ` FROM departments WHERE name = $1`

	var dept department.Department
	err := scanDepartmentRow(q.QueryRow(ctx, query, name), &dept)
	if err != nil {
		if err == pgx.ErrNoRows {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department by name: %w", err)
	}

	return dept, nil
}

// List implements department.Repository.
func (d *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var dept department.Department
		if err := scanDepartmentRow(rows, &dept); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dept)
	}

	return departments, rows.Err()
}

// Update implements department.Repository.
func (d *departmentRepository) Update(ctx context.Context, dept department.Department) error {
	q := GetQuerier(ctx, d.db)

	query := `
		UPDATE departments SET
			name       = $2,
			latitude   = $3,
			longitude  = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, dept.ID, dept.Name, dept.Latitude, dept.Longitude)
	if err != nil {
		if isUniqueViolation(err) {
			return department.ErrDepartmentExists
		}
		return fmt.Errorf("failed to update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// Delete implements department.Repository. A department with employees still
// assigned cannot be removed.
func (d *departmentRepository) Delete(ctx context.Context, id string) error {
	// The usage check and the delete must see the same snapshot, otherwise an
	// employee assigned between the two statements would be orphaned.
	return WithTransaction(ctx, d.db, func(tx pgx.Tx) error {
		var inUse bool
		checkQuery := `
			SELECT EXISTS (
				SELECT 1 FROM employees e
				JOIN departments dp ON dp.name = e.department
				WHERE dp.id = $1
				  AND e.deleted_at IS NULL
			)
		`
		if err := tx.QueryRow(ctx, checkQuery, id).Scan(&inUse); err != nil {
			return fmt.Errorf("failed to check department usage: %w", err)
		}
		if inUse {
			return department.ErrDepartmentInUse
		}

		tag, err := tx.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete department: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return department.ErrDepartmentNotFound
		}

		return nil
	})
}
