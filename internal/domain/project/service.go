package project

import "context"

// Service defines business logic for project and task tracking.
type Service interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetProject(ctx context.Context, id string) (ProjectResponse, error)
	ListProjects(ctx context.Context, department *string) ([]ProjectResponse, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) error

	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	ListTasks(ctx context.Context, projectID string) ([]TaskResponse, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
}
