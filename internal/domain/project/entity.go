package project

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "planned"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Project is a municipal project owned by one department.
type Project struct {
	ID          string
	Name        string
	Description *string
	Department  string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task is a unit of work under a project, assigned to one employee.
type Task struct {
	ID         string
	ProjectID  string
	AssigneeID *string
	Title      string
	Status     TaskStatus
	DueDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
