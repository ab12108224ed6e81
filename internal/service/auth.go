// Package service contains the application services behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgcrypto "github.com/and161185/medidesk/internal/crypto"
	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/limiter"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository"
)

// TokenIssuer signs session tokens for an Identity.
type TokenIssuer interface {
	Issue(id model.Identity) (token string, expiresAt time.Time, err error)
}

// AuthService defines login and account provisioning.
type AuthService interface {
	// Login applies rate-limiting, verifies the password and issues a session token.
	Login(ctx context.Context, email, password, remoteAddr string) (model.SessionToken, model.User, error)
	// CreateUser provisions an account with an argon2id password hash.
	CreateUser(ctx context.Context, email, name, password string, role model.Role) (*model.User, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens TokenIssuer
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// Login authenticates with rate limiting by (email, client address).
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, remoteAddr string) (model.SessionToken, model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.SessionToken{}, model.User{}, fmt.Errorf("%w: email/password", errs.ErrBadRequest)
	}
	ipHash := limiter.HashIP(remoteAddr)

	allowed, retry, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.SessionToken{}, model.User{}, err
	}
	if !allowed {
		return model.SessionToken{}, model.User{}, &errs.RetryAfterError{After: retry}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.SessionToken{}, model.User{}, err
	}
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PwdHash) {
		if blocked, retry, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.SessionToken{}, model.User{}, &errs.RetryAfterError{After: retry}
		}
		// unknown e-mail and wrong password look the same
		return model.SessionToken{}, model.User{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)

	tok, exp, err := s.tokens.Issue(model.Identity{ID: u.ID, Role: u.Role})
	if err != nil {
		return model.SessionToken{}, model.User{}, err
	}
	return model.SessionToken{Token: tok, ExpiresAt: exp}, *u, nil
}

// CreateUser validates the role, hashes the password and inserts the user.
func (s *AuthServiceImpl) CreateUser(ctx context.Context, email, name, password string, role model.Role) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email/password", errs.ErrBadRequest)
	}
	r, ok := model.ParseRole(string(role))
	if !ok {
		return nil, fmt.Errorf("%w: role %q", errs.ErrBadRequest, role)
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{Email: email, Name: strings.TrimSpace(name), Role: r, PwdHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
