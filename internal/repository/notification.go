package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/mkraj/wholemart/internal/repository/postgres"
)

const (
	insertNotificationQuery = `
						INSERT INTO notifications (id, user_id, type, priority, title, message, data, created_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	selectNotificationsQuery = `
						SELECT id, user_id, type, priority, title, message, data, is_read, created_at, read_at
						FROM notifications
						WHERE user_id = $1
						ORDER BY created_at DESC
						LIMIT $2
`
	countUnreadQuery = `
						SELECT count(*) FROM notifications
						WHERE user_id = $1 AND is_read = FALSE
`
	markReadQuery = `
						UPDATE notifications
						SET is_read = TRUE, read_at = now()
						WHERE id = $1 AND user_id = $2 AND is_read = FALSE
`
	markAllReadQuery = `
						UPDATE notifications
						SET is_read = TRUE, read_at = now()
						WHERE user_id = $1 AND is_read = FALSE
`
	deleteNotificationQuery = `
						DELETE FROM notifications
						WHERE id = $1 AND user_id = $2
`
)

// NotificationRepository implements notification persistence
type NotificationRepository struct {
	db *postgres.DB
}

// NewNotificationRepository creates new NotificationRepository instance
func NewNotificationRepository(db *postgres.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification inserts new notification
func (nr *NotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	_, err := nr.db.Exec(ctx, insertNotificationQuery, n.ID, n.UserID, n.Type,
		n.Priority, n.Title, n.Message, n.Data, n.CreatedAt)
	return err
}

// GetNotifications returns the user's most recent notifications
// together with the authoritative unread count
func (nr *NotificationRepository) GetNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, int, error) {
	rows, err := nr.db.Query(ctx, selectNotificationsQuery, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.Notification{}
	for rows.Next() {
		n := models.Notification{}
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Priority, &n.Title,
			&n.Message, &n.Data, &n.IsRead, &n.CreatedAt, &n.ReadAt)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var unread int
	if err := nr.db.QueryRow(ctx, countUnreadQuery, userID).Scan(&unread); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, err
		}
	}

	return items, unread, nil
}

// MarkRead marks one notification read. Marking an already read or
// unknown notification affects no rows, which is fine: the operation
// is idempotent.
func (nr *NotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	_, err := nr.db.Exec(ctx, markReadQuery, id, userID)
	return err
}

// MarkAllRead marks every unread notification of the user read
func (nr *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := nr.db.Exec(ctx, markAllReadQuery, userID)
	return err
}

// DeleteNotification removes a notification. Deleting an unknown id
// is success, the record is gone either way.
func (nr *NotificationRepository) DeleteNotification(ctx context.Context, userID, id uuid.UUID) error {
	_, err := nr.db.Exec(ctx, deleteNotificationQuery, id, userID)
	return err
}
