package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository.
func (n *notificationRepository) Create(ctx context.Context, notif *notification.Notification) error {
	q := GetQuerier(ctx, n.db)

	data, err := json.Marshal(notif.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (
			id, recipient_id, sender_id, type, title, message, data
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		notif.ID, notif.RecipientID, notif.SenderID, notif.Type,
		notif.Title, notif.Message, data,
	).Scan(&notif.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// CreateBatch implements notification.Repository. One round trip for the
// whole queue flush.
func (n *notificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	q := GetQuerier(ctx, n.db)

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data)
		SELECT * FROM unnest(
			$1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[], $7::jsonb[]
		)
	`

	ids := make([]string, len(ns))
	recipients := make([]string, len(ns))
	senders := make([]*string, len(ns))
	types := make([]string, len(ns))
	titles := make([]string, len(ns))
	messages := make([]string, len(ns))
	datas := make([][]byte, len(ns))

	for i, notif := range ns {
		data, err := json.Marshal(notif.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
		ids[i] = notif.ID
		recipients[i] = notif.RecipientID
		senders[i] = notif.SenderID
		types[i] = string(notif.Type)
		titles[i] = notif.Title
		messages[i] = notif.Message
		datas[i] = data
	}

	if _, err := q.Exec(ctx, query, ids, recipients, senders, types, titles, messages, datas); err != nil {
		return fmt.Errorf("failed to create notification batch: %w", err)
	}

	return nil
}

// GetByUserID implements notification.Repository.
func (n *notificationRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, n.db)

	whereClause := "WHERE recipient_id = $1"
	if unreadOnly {
		whereClause += " AND is_read = FALSE"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications ` + whereClause
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, recipient_id, sender_id, type, title, message, data,
		       is_read, read_at, created_at
		FROM notifications
		%s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, whereClause)

	rows, err := q.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var notif notification.Notification
		var data []byte
		err := rows.Scan(
			&notif.ID, &notif.RecipientID, &notif.SenderID, &notif.Type,
			&notif.Title, &notif.Message, &data,
			&notif.IsRead, &notif.ReadAt, &notif.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &notif.Data); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, &notif)
	}

	return notifications, total, rows.Err()
}

// GetUnreadCount implements notification.Repository.
func (n *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, n.db)

	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`
	if err := q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead implements notification.Repository.
func (n *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications SET
			is_read = TRUE,
			read_at = NOW()
		WHERE id = ANY($1)
		  AND recipient_id = $2
		  AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, ids, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

// MarkAllAsRead implements notification.Repository.
func (n *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications SET
			is_read = TRUE,
			read_at = NOW()
		WHERE recipient_id = $1
		  AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}

// Delete implements notification.Repository.
func (n *notificationRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, n.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}
