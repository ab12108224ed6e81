package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// TicketRepo implements TicketRepository using PostgreSQL.
type TicketRepo struct{ db *DB }

// NewTicketRepo constructs a ticket repository.
func NewTicketRepo(db *DB) *TicketRepo { return &TicketRepo{db: db} }

// Create inserts an open ticket.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	const q = `
INSERT INTO tickets (user_id, subject, message)
VALUES ($1, $2, $3)
RETURNING id, status, created_at`
	var status string
	err := r.db.Pool.QueryRow(ctx, q, t.UserID, t.Subject, t.Message).Scan(&t.ID, &status, &t.CreatedAt)
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	t.Status = model.TicketStatus(status)
	return nil
}

// ListByUser returns tickets where user_id = userID, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID int64) ([]model.Ticket, error) {
	const q = `
SELECT id, user_id, subject, message, status, created_at
FROM tickets WHERE user_id=$1
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return collectTickets(rows)
}

// ListAll returns every ticket, newest first.
func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	const q = `
SELECT id, user_id, subject, message, status, created_at
FROM tickets
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list all tickets: %w", err)
	}
	return collectTickets(rows)
}

// Close sets status CLOSED on a ticket owned by userID.
func (r *TicketRepo) Close(ctx context.Context, userID, id int64) error {
	const q = `UPDATE tickets SET status='CLOSED' WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("close ticket: %w", err)
	}
	return affected(tag)
}

func collectTickets(rows pgx.Rows) ([]model.Ticket, error) {
	defer rows.Close()
	out := []model.Ticket{}
	for rows.Next() {
		var (
			t      model.Ticket
			status string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Message, &status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		t.Status = model.TicketStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}
