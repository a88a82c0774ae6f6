package department

import "context"

// Repository defines data access for the department directory.
type Repository interface {
	Create(ctx context.Context, dept Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Update(ctx context.Context, dept Department) error
	Delete(ctx context.Context, id string) error
}
