package user

import "context"

// Repository defines data access for user accounts.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)

	// ListByRoles returns active users holding any of the given roles. Used
	// to fan out geofence alerts to admin and IT accounts.
	ListByRoles(ctx context.Context, roles []Role) ([]User, error)

	Update(ctx context.Context, u User) error
}
