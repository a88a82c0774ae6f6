package employee

import "context"

// Service defines business logic for directory management.
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) (ListEmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	// IdentityQR returns the employee's personal QR payload (tagged
	// employee_identity JSON) for badge printing on the client.
	IdentityQR(ctx context.Context, id string) ([]byte, error)
}
