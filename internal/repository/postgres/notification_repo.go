package postgres

import (
	"context"
	"fmt"

	"github.com/and161185/medidesk/internal/model"
)

// NotificationRepo implements NotificationRepository using PostgreSQL.
type NotificationRepo struct{ db *DB }

// NewNotificationRepo constructs a notification repository.
func NewNotificationRepo(db *DB) *NotificationRepo { return &NotificationRepo{db: db} }

// CreateForTicket inserts a notification addressed to the owner of ticketID
// in a single statement. A missing ticket yields errs.ErrNotFound.
func (r *NotificationRepo) CreateForTicket(ctx context.Context, ticketID int64, message string) (*model.Notification, error) {
	const q = `
INSERT INTO notifications (user_id, ticket_id, message)
SELECT t.user_id, t.id, $2 FROM tickets t WHERE t.id=$1
RETURNING id, user_id, ticket_id, message, read_at, created_at`
	var n model.Notification
	err := r.db.Pool.QueryRow(ctx, q, ticketID, message).
		Scan(&n.ID, &n.UserID, &n.TicketID, &n.Message, &n.ReadAt, &n.CreatedAt)
	if err != nil {
		return nil, noRows("insert notification", err)
	}
	return &n, nil
}

// ListUnread returns notifications of userID with read_at IS NULL, newest first,
// joined with the subject and creation date of their ticket.
func (r *NotificationRepo) ListUnread(ctx context.Context, userID int64) ([]model.Notification, error) {
	const q = `
SELECT n.id, n.user_id, n.ticket_id, n.message, n.read_at, n.created_at, t.subject, t.created_at
FROM notifications n JOIN tickets t ON t.id = n.ticket_id
WHERE n.user_id=$1 AND n.read_at IS NULL
ORDER BY n.created_at DESC, n.id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.TicketID, &n.Message, &n.ReadAt, &n.CreatedAt,
			&n.TicketSubject, &n.TicketCreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead sets read_at on a notification of userID; already read rows keep their timestamp.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id int64) error {
	const q = `UPDATE notifications SET read_at=COALESCE(read_at, now()) WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return affected(tag)
}
