package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password_hash, role, employee_id, is_active, created_at, updated_at`

func scanUserRow(row pgx.Row, u *user.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.EmployeeID,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
}

// Create implements user.Repository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, username, password_hash, role, employee_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.Role, u.EmployeeID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.Repository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u user.User
	err := scanUserRow(q.QueryRow(ctx, query, id), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByUsername implements user.Repository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var u user.User
	err := scanUserRow(q.QueryRow(ctx, query, username), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return u, nil
}

// GetByEmployeeID implements user.Repository.
func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE employee_id = $1`

	var u user.User
	err := scanUserRow(q.QueryRow(ctx, query, employeeID), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by employee id: %w", err)
	}

	return u, nil
}

// ListByRoles implements user.Repository.
func (r *userRepository) ListByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = ANY($1)
		  AND is_active = TRUE
		ORDER BY username ASC
	`

	rows, err := q.Query(ctx, query, roleStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by roles: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := scanUserRow(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Update implements user.Repository.
func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET
			username      = $2,
			password_hash = $3,
			role          = $4,
			employee_id   = $5,
			is_active     = $6,
			updated_at    = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, u.ID, u.Username, u.PasswordHash, u.Role, u.EmployeeID, u.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
