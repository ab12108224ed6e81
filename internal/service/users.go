package service

import (
	"context"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository"
)

// UserService exposes account reads.
type UserService interface {
	// Get returns a user with its voice-assistant link. Non-admin callers may
	// only read their effective user; any other id is reported as not found.
	Get(ctx context.Context, caller model.Identity, effectiveUserID, userID int64) (*model.UserDetails, error)
	// List returns every user.
	List(ctx context.Context) ([]model.User, error)
}

type UserServiceImpl struct {
	users repository.UserRepository
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

func (s *UserServiceImpl) Get(ctx context.Context, caller model.Identity, effectiveUserID, userID int64) (*model.UserDetails, error) {
	if userID <= 0 {
		return nil, errs.ErrBadRequest
	}
	if !caller.IsAdmin() && userID != effectiveUserID {
		return nil, errs.ErrNotFound
	}
	return s.users.GetDetails(ctx, userID, model.ProductVoiceAssistant)
}

func (s *UserServiceImpl) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
