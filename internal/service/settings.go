package service

import (
	"context"

	"github.com/and161185/medidesk/internal/authz"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository"
)

// SettingsService reads and writes per-user-product configuration.
// Every operation first checks the link belongs to the effective user.
type SettingsService interface {
	TalkSettings(ctx context.Context, effectiveUserID, userProductID int64) (*model.TalkSettings, error)
	SaveTalkSettings(ctx context.Context, effectiveUserID, userProductID int64, reconnaissance bool) (*model.TalkSettings, error)
	NumberRecognition(ctx context.Context, effectiveUserID, userProductID int64) (*model.NumberRecognition, error)
	SaveNumberRecognition(ctx context.Context, effectiveUserID, userProductID int64, enabled bool) (*model.NumberRecognition, error)
}

type SettingsServiceImpl struct {
	settings repository.SettingsRepository
	guard    *authz.Guard
}

// NewSettingsService constructs SettingsService.
func NewSettingsService(settings repository.SettingsRepository, guard *authz.Guard) *SettingsServiceImpl {
	return &SettingsServiceImpl{settings: settings, guard: guard}
}

func (s *SettingsServiceImpl) TalkSettings(ctx context.Context, effectiveUserID, userProductID int64) (*model.TalkSettings, error) {
	if _, err := s.guard.UserProduct(ctx, effectiveUserID, userProductID); err != nil {
		return nil, err
	}
	return s.settings.GetTalkSettings(ctx, userProductID)
}

func (s *SettingsServiceImpl) SaveTalkSettings(ctx context.Context, effectiveUserID, userProductID int64, reconnaissance bool) (*model.TalkSettings, error) {
	if _, err := s.guard.UserProduct(ctx, effectiveUserID, userProductID); err != nil {
		return nil, err
	}
	return s.settings.UpsertTalkSettings(ctx, userProductID, reconnaissance)
}

func (s *SettingsServiceImpl) NumberRecognition(ctx context.Context, effectiveUserID, userProductID int64) (*model.NumberRecognition, error) {
	if _, err := s.guard.UserProduct(ctx, effectiveUserID, userProductID); err != nil {
		return nil, err
	}
	return s.settings.GetNumberRecognition(ctx, userProductID)
}

func (s *SettingsServiceImpl) SaveNumberRecognition(ctx context.Context, effectiveUserID, userProductID int64, enabled bool) (*model.NumberRecognition, error) {
	if _, err := s.guard.UserProduct(ctx, effectiveUserID, userProductID); err != nil {
		return nil, err
	}
	return s.settings.UpsertNumberRecognition(ctx, userProductID, enabled)
}
