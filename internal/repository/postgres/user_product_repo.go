package postgres

import (
	"context"
	"fmt"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// UserProductRepo implements UserProductRepository using PostgreSQL.
type UserProductRepo struct{ db *DB }

// NewUserProductRepo constructs a user-product repository.
func NewUserProductRepo(db *DB) *UserProductRepo { return &UserProductRepo{db: db} }

// Get loads a link by id. Owner and removal checks belong to the caller.
func (r *UserProductRepo) Get(ctx context.Context, id int64) (*model.UserProduct, error) {
	const q = `
SELECT up.id, up.user_id, up.product_id, p.name, up.removed_at, up.created_at
FROM user_products up JOIN products p ON p.id = up.product_id
WHERE up.id=$1`
	var p model.UserProduct
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.UserID, &p.ProductID, &p.ProductName, &p.RemovedAt, &p.CreatedAt)
	if err != nil {
		return nil, noRows("select user product", err)
	}
	return &p, nil
}

// ListActive returns the links of userID with removed_at IS NULL.
func (r *UserProductRepo) ListActive(ctx context.Context, userID int64) ([]model.UserProduct, error) {
	const q = `
SELECT up.id, up.user_id, up.product_id, p.name, up.removed_at, up.created_at
FROM user_products up JOIN products p ON p.id = up.product_id
WHERE up.user_id=$1 AND up.removed_at IS NULL
ORDER BY up.id ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list user products: %w", err)
	}
	defer rows.Close()

	out := []model.UserProduct{}
	for rows.Next() {
		var p model.UserProduct
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProductID, &p.ProductName, &p.RemovedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Link creates an active link. Unknown user or product yields errs.ErrNotFound.
func (r *UserProductRepo) Link(ctx context.Context, userID, productID int64) (*model.UserProduct, error) {
	const q = `
WITH ins AS (
  INSERT INTO user_products (user_id, product_id) VALUES ($1, $2)
  RETURNING id, user_id, product_id, removed_at, created_at
)
SELECT ins.id, ins.user_id, ins.product_id, p.name, ins.removed_at, ins.created_at
FROM ins JOIN products p ON p.id = ins.product_id`
	var p model.UserProduct
	err := r.db.Pool.QueryRow(ctx, q, userID, productID).
		Scan(&p.ID, &p.UserID, &p.ProductID, &p.ProductName, &p.RemovedAt, &p.CreatedAt)
	if isForeignKeyViolation(err) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert user product: %w", err)
	}
	return &p, nil
}

// SoftDelete marks an active link of userID as removed.
func (r *UserProductRepo) SoftDelete(ctx context.Context, userID, id int64) error {
	const q = `UPDATE user_products SET removed_at=now() WHERE id=$1 AND user_id=$2 AND removed_at IS NULL`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("soft delete user product: %w", err)
	}
	return affected(tag)
}
