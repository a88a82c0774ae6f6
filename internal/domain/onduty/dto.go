package onduty

import (
	"github.com/lgu-hris/hris-backend-go/internal/pkg/validator"
)

type ScheduleRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

func (r *ScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
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

type AssignmentResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
	ScheduledBy  string `json:"scheduled_by"`
	Materialized bool   `json:"materialized"`
}
