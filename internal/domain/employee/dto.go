package employee

import (
	"github.com/lgu-hris/hris-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Department     string  `json:"department"`
	Position       *string `json:"position,omitempty"`
	EmployeeType   string  `json:"employee_type"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	HireDate       *string `json:"hire_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeNumber(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee number must match EMP-NNN format",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full name is required",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	validTypes := []string{
		string(EmployeeTypePermanent),
		string(EmployeeTypeCasual),
		string(EmployeeTypeContractOS),
		string(EmployeeTypeJobOrder),
		string(EmployeeTypeElective),
	}
	if !validator.IsInSlice(r.EmployeeType, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_type",
			Message: "invalid employee type",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	FullName     *string `json:"full_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	EmployeeType *string `json:"employee_type,omitempty"`
	Email        *string `json:"email,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Department     string  `json:"department"`
	Position       *string `json:"position,omitempty"`
	EmployeeType   string  `json:"employee_type"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	HireDate       *string `json:"hire_date,omitempty"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
