package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/project"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.Repository {
	return &projectRepository{db: db}
}

const projectColumns = `id, name, description, department, status, start_date, end_date, created_at, updated_at`

const taskColumns = `id, project_id, assignee_id, title, status, due_date, created_at, updated_at`

func scanProjectRow(row pgx.Row, p *project.Project) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Department, &p.Status,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
}

func scanTaskRow(row pgx.Row, t *project.Task) error {
	return row.Scan(
		&t.ID, &t.ProjectID, &t.AssigneeID, &t.Title, &t.Status,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
}

// CreateProject implements project.Repository.
func (r *projectRepository) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (id, name, description, department, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Department, p.Status, p.StartDate, p.EndDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return p, nil
}

// GetProject implements project.Repository.
func (r *projectRepository) GetProject(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	var p project.Project
	err := scanProjectRow(q.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

// ListProjects implements project.Repository.
func (r *projectRepository) ListProjects(ctx context.Context, department *string) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []interface{}
	if department != nil {
		query += ` WHERE department = $1`
		args = append(args, *department)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var p project.Project
		if err := scanProjectRow(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// UpdateProject implements project.Repository.
func (r *projectRepository) UpdateProject(ctx context.Context, p project.Project) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE projects SET
			name        = $2,
			description = $3,
			status      = $4,
			start_date  = $5,
			end_date    = $6,
			updated_at  = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}

	return nil
}

// DeleteProject implements project.Repository. Tasks cascade at the schema
// level.
func (r *projectRepository) DeleteProject(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}

	return nil
}

// CreateTask implements project.Repository.
func (r *projectRepository) CreateTask(ctx context.Context, t project.Task) (project.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (id, project_id, assignee_id, title, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID, t.ProjectID, t.AssigneeID, t.Title, t.Status, t.DueDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return project.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

// GetTask implements project.Repository.
func (r *projectRepository) GetTask(ctx context.Context, id string) (project.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var t project.Task
	err := scanTaskRow(q.QueryRow(ctx, query, id), &t)
	if err != nil {
		if err == pgx.ErrNoRows {
			return project.Task{}, project.ErrTaskNotFound
		}
		return project.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// ListTasks implements project.Repository.
func (r *projectRepository) ListTasks(ctx context.Context, projectID string) ([]project.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []project.Task
	for rows.Next() {
		var t project.Task
		if err := scanTaskRow(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// UpdateTask implements project.Repository.
func (r *projectRepository) UpdateTask(ctx context.Context, t project.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks SET
			assignee_id = $2,
			title       = $3,
			status      = $4,
			due_date    = $5,
			updated_at  = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, t.ID, t.AssigneeID, t.Title, t.Status, t.DueDate)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrTaskNotFound
	}

	return nil
}

// DeleteTask implements project.Repository.
func (r *projectRepository) DeleteTask(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrTaskNotFound
	}

	return nil
}
