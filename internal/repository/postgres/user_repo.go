package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, email, name, role, pwd_hash, created_at`

func scanUser(row pgx.Row, u *model.User) error {
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PwdHash, &u.CreatedAt); err != nil {
		return err
	}
	u.Role = model.Role(role)
	return nil
}

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (email, name, role, pwd_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	err := r.db.Pool.QueryRow(ctx, q, strings.ToLower(u.Email), u.Name, string(u.Role), u.PwdHash).
		Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE id=$1`
	var u model.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, q, id), &u); err != nil {
		return nil, noRows("select user", err)
	}
	return &u, nil
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE email=$1`
	var u model.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, q, strings.ToLower(email)), &u); err != nil {
		return nil, noRows("select user by email", err)
	}
	return &u, nil
}

// GetDetails selects a user together with the lowest-id active link to productID.
func (r *UserRepo) GetDetails(ctx context.Context, id, productID int64) (*model.UserDetails, error) {
	const q = `
SELECT u.id, u.email, u.name, u.role, u.pwd_hash, u.created_at,
  (SELECT up.id FROM user_products up
   WHERE up.user_id = u.id AND up.product_id = $2 AND up.removed_at IS NULL
   ORDER BY up.id ASC LIMIT 1)
FROM users u WHERE u.id=$1`
	var (
		d    model.UserDetails
		role string
	)
	err := r.db.Pool.QueryRow(ctx, q, id, productID).
		Scan(&d.ID, &d.Email, &d.Name, &role, &d.PwdHash, &d.CreatedAt, &d.UserProductID)
	if err != nil {
		return nil, noRows("select user details", err)
	}
	d.Role = model.Role(role)
	return &d, nil
}

// List returns all users ordered by ID.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	q := `SELECT ` + userCols + ` FROM users ORDER BY id ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
