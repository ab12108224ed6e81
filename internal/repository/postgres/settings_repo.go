package postgres

import (
	"context"
	"fmt"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// SettingsRepo implements SettingsRepository using PostgreSQL.
// Both tables are keyed by user_product_id; upserts rely on ON CONFLICT atomicity.
type SettingsRepo struct{ db *DB }

// NewSettingsRepo constructs a settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

// UpsertTalkSettings creates or updates the talk settings of a user product.
func (r *SettingsRepo) UpsertTalkSettings(ctx context.Context, userProductID int64, reconnaissance bool) (*model.TalkSettings, error) {
	const q = `
INSERT INTO talk_settings (user_product_id, reconnaissance, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_product_id)
DO UPDATE SET reconnaissance=EXCLUDED.reconnaissance, updated_at=now()
RETURNING user_product_id, reconnaissance, updated_at`
	var s model.TalkSettings
	err := r.db.Pool.QueryRow(ctx, q, userProductID, reconnaissance).Scan(&s.UserProductID, &s.Reconnaissance, &s.UpdatedAt)
	if isForeignKeyViolation(err) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("upsert talk settings: %w", err)
	}
	return &s, nil
}

// GetTalkSettings loads the talk settings of a user product.
func (r *SettingsRepo) GetTalkSettings(ctx context.Context, userProductID int64) (*model.TalkSettings, error) {
	const q = `SELECT user_product_id, reconnaissance, updated_at FROM talk_settings WHERE user_product_id=$1`
	var s model.TalkSettings
	if err := r.db.Pool.QueryRow(ctx, q, userProductID).Scan(&s.UserProductID, &s.Reconnaissance, &s.UpdatedAt); err != nil {
		return nil, noRows("select talk settings", err)
	}
	return &s, nil
}

// UpsertNumberRecognition creates or updates the number recognition flag of a user product.
func (r *SettingsRepo) UpsertNumberRecognition(ctx context.Context, userProductID int64, enabled bool) (*model.NumberRecognition, error) {
	const q = `
INSERT INTO number_recognition (user_product_id, enabled, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_product_id)
DO UPDATE SET enabled=EXCLUDED.enabled, updated_at=now()
RETURNING user_product_id, enabled, updated_at`
	var s model.NumberRecognition
	err := r.db.Pool.QueryRow(ctx, q, userProductID, enabled).Scan(&s.UserProductID, &s.Enabled, &s.UpdatedAt)
	if isForeignKeyViolation(err) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("upsert number recognition: %w", err)
	}
	return &s, nil
}

// GetNumberRecognition loads the number recognition flag of a user product.
func (r *SettingsRepo) GetNumberRecognition(ctx context.Context, userProductID int64) (*model.NumberRecognition, error) {
	const q = `SELECT user_product_id, enabled, updated_at FROM number_recognition WHERE user_product_id=$1`
	var s model.NumberRecognition
	if err := r.db.Pool.QueryRow(ctx, q, userProductID).Scan(&s.UserProductID, &s.Enabled, &s.UpdatedAt); err != nil {
		return nil, noRows("select number recognition", err)
	}
	return &s, nil
}
