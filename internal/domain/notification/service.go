package notification

import "context"

// Service defines the notification sink the rest of the system publishes
// through. Delivery is asynchronous; callers never block on persistence.
type Service interface {
	Publish(ctx context.Context, req CreateNotificationRequest) error
	PublishToMany(ctx context.Context, recipientIDs []string, req CreateNotificationRequest) error

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID string, ids []string) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// Stop flushes queued notifications and stops background workers.
	Stop()
}
