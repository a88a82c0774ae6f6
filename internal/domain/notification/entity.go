package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeOutOfRangeScan NotificationType = "out_of_range_scan"
	TypeLeaveFiled     NotificationType = "leave_filed"
	TypeLeaveApproved  NotificationType = "leave_approved"
	TypeLeaveRejected  NotificationType = "leave_rejected"
	TypeOnDutyAssigned NotificationType = "on_duty_assigned"
	TypeTaskAssigned   NotificationType = "task_assigned"
)

// Notification is a message delivered to one user, persisted and pushed over
// SSE when the user is connected.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
