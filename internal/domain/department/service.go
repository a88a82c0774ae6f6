package department

import "context"

// Service defines business logic for department management.
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Get(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error

	// ScanQR returns the department's attendance QR payload (tagged
	// department_scan JSON) for printing at the office entrance.
	ScanQR(ctx context.Context, id string) ([]byte, error)
}
