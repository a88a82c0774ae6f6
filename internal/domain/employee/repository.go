package employee

import "context"

// Repository defines data access for the employee directory.
type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeNumber(ctx context.Context, number string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListByDepartment(ctx context.Context, department string) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error

	// Delete soft-deletes; directory lookups exclude removed employees.
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Department *string
	Search     *string
	Page       int
	Limit      int
}
