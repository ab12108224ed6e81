package postgres

import (
	"context"
	"fmt"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// NumberRepo implements NumberRepository using PostgreSQL.
type NumberRepo struct{ db *DB }

// NewNumberRepo constructs a number repository.
func NewNumberRepo(db *DB) *NumberRepo { return &NumberRepo{db: db} }

// Get loads a number by id.
func (r *NumberRepo) Get(ctx context.Context, id int64) (*model.UserNumber, error) {
	const q = `SELECT id, user_id, number, label, created_at FROM user_numbers WHERE id=$1`
	var n model.UserNumber
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&n.ID, &n.UserID, &n.Number, &n.Label, &n.CreatedAt); err != nil {
		return nil, noRows("select number", err)
	}
	return &n, nil
}

// ListByUser returns the numbers of userID ordered by id.
func (r *NumberRepo) ListByUser(ctx context.Context, userID int64) ([]model.UserNumber, error) {
	const q = `SELECT id, user_id, number, label, created_at FROM user_numbers WHERE user_id=$1 ORDER BY id ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list numbers: %w", err)
	}
	defer rows.Close()

	out := []model.UserNumber{}
	for rows.Next() {
		var n model.UserNumber
		if err := rows.Scan(&n.ID, &n.UserID, &n.Number, &n.Label, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan number: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Create inserts a number. Unknown user yields errs.ErrNotFound.
func (r *NumberRepo) Create(ctx context.Context, n *model.UserNumber) error {
	const q = `INSERT INTO user_numbers (user_id, number, label) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.Pool.QueryRow(ctx, q, n.UserID, n.Number, n.Label).Scan(&n.ID, &n.CreatedAt)
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("insert number: %w", err)
	}
	return nil
}

// Delete removes number id when it belongs to userID.
func (r *NumberRepo) Delete(ctx context.Context, userID, id int64) error {
	const q = `DELETE FROM user_numbers WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("delete number: %w", err)
	}
	return affected(tag)
}
