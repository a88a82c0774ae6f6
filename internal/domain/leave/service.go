package leave

import "context"

// Service defines business logic for leave applications.
type Service interface {
	// File creates a pending application after rejecting any inclusive
	// interval overlap with the employee's existing non-rejected leaves.
	File(ctx context.Context, req FileLeaveRequest) (LeaveResponse, error)

	// Update edits a pending application, re-running the overlap check with
	// the record itself excluded.
	Update(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)

	Approve(ctx context.Context, req DecideLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req DecideLeaveRequest) (LeaveResponse, error)

	GetMyLeaves(ctx context.Context) ([]LeaveResponse, error)
	List(ctx context.Context, filter ListFilter) (ListLeaveResponse, error)
	Delete(ctx context.Context, id string) error
}
