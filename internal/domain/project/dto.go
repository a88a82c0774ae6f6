package project

import (
	"github.com/lgu-hris/hris-backend-go/internal/pkg/validator"
)

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Department  string  `json:"department"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

func (r *CreateProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	for field, v := range map[string]*string{"start_date": r.StartDate, "end_date": r.EndDate} {
		if v != nil {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs = append(errs, validator.ValidationError{Field: field, Message: "date must be YYYY-MM-DD"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProjectRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

type CreateTaskRequest struct {
	ProjectID  string  `json:"-"`
	Title      string  `json:"title"`
	AssigneeID *string `json:"assignee_id,omitempty"`
	DueDate    *string `json:"due_date,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "due_date", Message: "date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTaskRequest struct {
	ID         string  `json:"-"`
	Title      *string `json:"title,omitempty"`
	AssigneeID *string `json:"assignee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	DueDate    *string `json:"due_date,omitempty"`
}

type ProjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Department  string  `json:"department"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

type TaskResponse struct {
	ID         string  `json:"id"`
	ProjectID  string  `json:"project_id"`
	AssigneeID *string `json:"assignee_id,omitempty"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	DueDate    *string `json:"due_date,omitempty"`
}
