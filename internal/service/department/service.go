package department

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lgu-hris/hris-backend-go/internal/domain/department"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/qr"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/validator"
)

type DepartmentServiceImpl struct {
	departmentRepo department.Repository
}

func NewDepartmentService(departmentRepo department.Repository) department.Service {
	return &DepartmentServiceImpl{departmentRepo: departmentRepo}
}

// Create implements department.Service.
func (d *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	dept := department.Department{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	stored, err := d.departmentRepo.Create(ctx, dept)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return mapDepartmentToResponse(stored), nil
}

// Get implements department.Service.
func (d *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	dept, err := d.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return mapDepartmentToResponse(dept), nil
}

// List implements department.Service.
func (d *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := d.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		responses = append(responses, mapDepartmentToResponse(dept))
	}
	return responses, nil
}

// Update implements department.Service. Renaming is allowed; employee rows
// referencing the old name are carried along by the schema's cascading
// foreign key.
func (d *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	dept, err := d.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		if validator.IsEmpty(*req.Name) {
			return department.DepartmentResponse{}, validator.ValidationErrors{
				{Field: "name", Message: "name cannot be empty"},
			}
		}
		dept.Name = *req.Name
	}
	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude == nil || req.Longitude == nil {
			return department.DepartmentResponse{}, validator.ValidationErrors{
				{Field: "location", Message: "latitude and longitude must both be set"},
			}
		}
		if !validator.IsValidLatitude(*req.Latitude) || !validator.IsValidLongitude(*req.Longitude) {
			return department.DepartmentResponse{}, validator.ValidationErrors{
				{Field: "location", Message: "coordinates out of range"},
			}
		}
		dept.Latitude = req.Latitude
		dept.Longitude = req.Longitude
	}

	if err := d.departmentRepo.Update(ctx, dept); err != nil {
		return department.DepartmentResponse{}, err
	}

	return mapDepartmentToResponse(dept), nil
}

// Delete implements department.Service.
func (d *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	return d.departmentRepo.Delete(ctx, id)
}

// ScanQR implements department.Service.
func (d *DepartmentServiceImpl) ScanQR(ctx context.Context, id string) ([]byte, error) {
	dept, err := d.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := qr.EncodeDepartmentScan(dept.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode department scan payload: %w", err)
	}
	return payload, nil
}

func mapDepartmentToResponse(dept department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		Latitude:  dept.Latitude,
		Longitude: dept.Longitude,
	}
}
