package leave

import (
	"github.com/lgu-hris/hris-backend-go/internal/pkg/validator"
)

type FileLeaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *FileLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	validTypes := []string{
		string(LeaveTypeVacation),
		string(LeaveTypeSick),
		string(LeaveTypeMaternity),
		string(LeaveTypePaternity),
		string(LeaveTypeSpecial),
		string(LeaveTypeStudy),
	}
	if !validator.IsInSlice(r.Type, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "invalid leave type",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start date must be YYYY-MM-DD",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end date must be YYYY-MM-DD",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end date cannot be before start date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveRequest struct {
	ID        string  `json:"-"`
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

type DecideLeaveRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason,omitempty"` // rejection reason
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Leaves     []LeaveResponse `json:"leaves"`
}
