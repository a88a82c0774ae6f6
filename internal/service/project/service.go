package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/domain/project"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
)

type ProjectServiceImpl struct {
	projectRepo  project.Repository
	employeeRepo employee.Repository
	userRepo     user.Repository
	notifier     notification.Service
}

func NewProjectService(
	projectRepo project.Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	notifier notification.Service,
) project.Service {
	return &ProjectServiceImpl{
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// CreateProject implements project.Service.
func (p *ProjectServiceImpl) CreateProject(ctx context.Context, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	proj := project.Project{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
		Status:      project.ProjectStatusPlanned,
	}
	if req.StartDate != nil {
		start, _ := time.Parse("2006-01-02", *req.StartDate)
		proj.StartDate = &start
	}
	if req.EndDate != nil {
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		proj.EndDate = &end
	}

	stored, err := p.projectRepo.CreateProject(ctx, proj)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	return mapProjectToResponse(stored), nil
}

// GetProject implements project.Service.
func (p *ProjectServiceImpl) GetProject(ctx context.Context, id string) (project.ProjectResponse, error) {
	proj, err := p.projectRepo.GetProject(ctx, id)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return mapProjectToResponse(proj), nil
}

// ListProjects implements project.Service.
func (p *ProjectServiceImpl) ListProjects(ctx context.Context, department *string) ([]project.ProjectResponse, error) {
	projects, err := p.projectRepo.ListProjects(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, proj := range projects {
		responses = append(responses, mapProjectToResponse(proj))
	}
	return responses, nil
}

// UpdateProject implements project.Service.
func (p *ProjectServiceImpl) UpdateProject(ctx context.Context, req project.UpdateProjectRequest) (project.ProjectResponse, error) {
	proj, err := p.projectRepo.GetProject(ctx, req.ID)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	if req.Name != nil {
		proj.Name = *req.Name
	}
	if req.Description != nil {
		proj.Description = req.Description
	}
	if req.Status != nil {
		switch project.ProjectStatus(*req.Status) {
		case project.ProjectStatusPlanned, project.ProjectStatusOngoing,
			project.ProjectStatusCompleted, project.ProjectStatusOnHold:
			proj.Status = project.ProjectStatus(*req.Status)
		default:
			return project.ProjectResponse{}, project.ErrInvalidStatus
		}
	}
	if req.StartDate != nil {
		start, perr := time.Parse("2006-01-02", *req.StartDate)
		if perr != nil {
			return project.ProjectResponse{}, fmt.Errorf("invalid start date: %w", perr)
		}
		proj.StartDate = &start
	}
	if req.EndDate != nil {
		end, perr := time.Parse("2006-01-02", *req.EndDate)
		if perr != nil {
			return project.ProjectResponse{}, fmt.Errorf("invalid end date: %w", perr)
		}
		proj.EndDate = &end
	}

	if err := p.projectRepo.UpdateProject(ctx, proj); err != nil {
		return project.ProjectResponse{}, err
	}

	return mapProjectToResponse(proj), nil
}

// DeleteProject implements project.Service.
func (p *ProjectServiceImpl) DeleteProject(ctx context.Context, id string) error {
	return p.projectRepo.DeleteProject(ctx, id)
}

// CreateTask implements project.Service.
func (p *ProjectServiceImpl) CreateTask(ctx context.Context, req project.CreateTaskRequest) (project.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskResponse{}, err
	}

	if _, err := p.projectRepo.GetProject(ctx, req.ProjectID); err != nil {
		return project.TaskResponse{}, err
	}
	if req.AssigneeID != nil {
		if _, err := p.employeeRepo.GetByID(ctx, *req.AssigneeID); err != nil {
			return project.TaskResponse{}, err
		}
	}

	t := project.Task{
		ID:         uuid.New().String(),
		ProjectID:  req.ProjectID,
		AssigneeID: req.AssigneeID,
		Title:      req.Title,
		Status:     project.TaskStatusTodo,
	}
	if req.DueDate != nil {
		due, _ := time.Parse("2006-01-02", *req.DueDate)
		t.DueDate = &due
	}

	stored, err := p.projectRepo.CreateTask(ctx, t)
	if err != nil {
		return project.TaskResponse{}, err
	}

	if stored.AssigneeID != nil {
		p.notifyAssignee(ctx, stored)
	}

	return mapTaskToResponse(stored), nil
}

func (p *ProjectServiceImpl) notifyAssignee(ctx context.Context, t project.Task) {
	owner, err := p.userRepo.GetByEmployeeID(ctx, *t.AssigneeID)
	if err != nil {
		return
	}

	_ = p.notifier.Publish(ctx, notification.CreateNotificationRequest{
		RecipientID: owner.ID,
		Type:        notification.TypeTaskAssigned,
		Title:       "Task assigned",
		Message:     fmt.Sprintf("You were assigned the task %q", t.Title),
		Data: map[string]interface{}{
			"task_id":    t.ID,
			"project_id": t.ProjectID,
		},
	})
}

// ListTasks implements project.Service.
func (p *ProjectServiceImpl) ListTasks(ctx context.Context, projectID string) ([]project.TaskResponse, error) {
	tasks, err := p.projectRepo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]project.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, mapTaskToResponse(t))
	}
	return responses, nil
}

// UpdateTask implements project.Service.
func (p *ProjectServiceImpl) UpdateTask(ctx context.Context, req project.UpdateTaskRequest) (project.TaskResponse, error) {
	t, err := p.projectRepo.GetTask(ctx, req.ID)
	if err != nil {
		return project.TaskResponse{}, err
	}

	reassigned := false
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.AssigneeID != nil {
		if _, aerr := p.employeeRepo.GetByID(ctx, *req.AssigneeID); aerr != nil {
			return project.TaskResponse{}, aerr
		}
		reassigned = t.AssigneeID == nil || *t.AssigneeID != *req.AssigneeID
		t.AssigneeID = req.AssigneeID
	}
	if req.Status != nil {
		switch project.TaskStatus(*req.Status) {
		case project.TaskStatusTodo, project.TaskStatusInProgress, project.TaskStatusDone:
			t.Status = project.TaskStatus(*req.Status)
		default:
			return project.TaskResponse{}, project.ErrInvalidStatus
		}
	}
	if req.DueDate != nil {
		due, perr := time.Parse("2006-01-02", *req.DueDate)
		if perr != nil {
			return project.TaskResponse{}, fmt.Errorf("invalid due date: %w", perr)
		}
		t.DueDate = &due
	}

	if err := p.projectRepo.UpdateTask(ctx, t); err != nil {
		return project.TaskResponse{}, err
	}

	if reassigned {
		p.notifyAssignee(ctx, t)
	}

	return mapTaskToResponse(t), nil
}

// DeleteTask implements project.Service.
func (p *ProjectServiceImpl) DeleteTask(ctx context.Context, id string) error {
	return p.projectRepo.DeleteTask(ctx, id)
}

func mapProjectToResponse(proj project.Project) project.ProjectResponse {
	resp := project.ProjectResponse{
		ID:          proj.ID,
		Name:        proj.Name,
		Description: proj.Description,
		Department:  proj.Department,
		Status:      string(proj.Status),
	}
	if proj.StartDate != nil {
		start := proj.StartDate.Format("2006-01-02")
		resp.StartDate = &start
	}
	if proj.EndDate != nil {
		end := proj.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func mapTaskToResponse(t project.Task) project.TaskResponse {
	resp := project.TaskResponse{
		ID:         t.ID,
		ProjectID:  t.ProjectID,
		AssigneeID: t.AssigneeID,
		Title:      t.Title,
		Status:     string(t.Status),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}
