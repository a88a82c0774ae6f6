package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lgu-hris/hris-backend-go/internal/domain/department"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/qr"
)

type EmployeeServiceImpl struct {
	employeeRepo   employee.Repository
	departmentRepo department.Repository
}

func NewEmployeeService(employeeRepo employee.Repository, departmentRepo department.Repository) employee.Service {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
	}
}

// Create implements employee.Service.
func (e *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Department must exist before the directory references it.
	if _, err := e.departmentRepo.GetByName(ctx, req.Department); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return employee.EmployeeResponse{}, employee.ErrUnknownDepartment
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to verify department: %w", err)
	}

	emp := employee.Employee{
		ID:             uuid.New().String(),
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Department:     req.Department,
		Position:       req.Position,
		EmployeeType:   employee.EmployeeType(req.EmployeeType),
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("invalid hire date: %w", err)
		}
		emp.HireDate = &hireDate
	}

	stored, err := e.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(stored), nil
}

// Get implements employee.Service.
func (e *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := e.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// List implements employee.Service.
func (e *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := e.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Employees:  responses,
	}, nil
}

// Update implements employee.Service.
func (e *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	emp, err := e.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Department != nil {
		if _, derr := e.departmentRepo.GetByName(ctx, *req.Department); derr != nil {
			if errors.Is(derr, department.ErrDepartmentNotFound) {
				return employee.EmployeeResponse{}, employee.ErrUnknownDepartment
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to verify department: %w", derr)
		}
		emp.Department = *req.Department
	}
	if req.Position != nil {
		emp.Position = req.Position
	}
	if req.EmployeeType != nil {
		switch employee.EmployeeType(*req.EmployeeType) {
		case employee.EmployeeTypePermanent, employee.EmployeeTypeCasual,
			employee.EmployeeTypeContractOS, employee.EmployeeTypeJobOrder,
			employee.EmployeeTypeElective:
			emp.EmployeeType = employee.EmployeeType(*req.EmployeeType)
		default:
			return employee.EmployeeResponse{}, fmt.Errorf("invalid employee type %q", *req.EmployeeType)
		}
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}

	if err := e.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// Delete implements employee.Service.
func (e *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return e.employeeRepo.Delete(ctx, id)
}

// IdentityQR implements employee.Service.
func (e *EmployeeServiceImpl) IdentityQR(ctx context.Context, id string) ([]byte, error) {
	emp, err := e.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := qr.EncodeEmployeeIdentity(emp.ID, emp.FullName, emp.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity payload: %w", err)
	}
	return payload, nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeNumber: emp.EmployeeNumber,
		FullName:       emp.FullName,
		Department:     emp.Department,
		Position:       emp.Position,
		EmployeeType:   string(emp.EmployeeType),
		Email:          emp.Email,
		PhoneNumber:    emp.PhoneNumber,
	}
	if emp.HireDate != nil {
		hireDate := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &hireDate
	}
	return resp
}
