package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound         = errors.New("leave record not found")
	ErrOverlappingLeave      = errors.New("leave dates overlap an existing application")
	ErrLeaveAlreadyProcessed = errors.New("leave application has already been approved or rejected")
	ErrInvalidLeaveType      = errors.New("invalid leave type")
	ErrInvalidDateRange      = errors.New("end date is before start date")
	ErrUnauthorized          = errors.New("unauthorized to access this leave record")
)
