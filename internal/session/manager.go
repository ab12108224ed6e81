// Package session resolves the caller's Identity from a signed session cookie
// and the effective user id from the optional active-user override cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// CookieName is the HTTP-only cookie carrying the session token.
const CookieName = "session"

// Manager issues and verifies HS256 session tokens and writes session cookies.
type Manager struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager constructs a Manager. secure sets the Secure flag on every cookie it writes.
func NewManager(key []byte, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{key: key, ttl: ttl, secure: secure, now: time.Now}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for id and returns it with its expiry.
func (m *Manager) Issue(id model.Identity) (string, time.Time, error) {
	if id.ID <= 0 {
		return "", time.Time{}, fmt.Errorf("issue session: %w", errs.ErrBadRequest)
	}
	now := m.now()
	exp := now.Add(m.ttl)
	c := claims{
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies a token and returns the Identity it carries.
// Any failure is reported as errs.ErrUnauthorized.
func (m *Manager) Parse(token string) (model.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return model.Identity{}, errors.Join(errs.ErrUnauthorized, err)
	}
	uid, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || uid <= 0 {
		return model.Identity{}, errs.ErrUnauthorized
	}
	role, ok := model.ParseRole(c.Role)
	if !ok {
		return model.Identity{}, errs.ErrUnauthorized
	}
	return model.Identity{ID: uid, Role: role}, nil
}

// Resolve reads the session cookie of r and returns its Identity.
func (m *Manager) Resolve(r *http.Request) (model.Identity, error) {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return model.Identity{}, errs.ErrUnauthorized
	}
	return m.Parse(ck.Value)
}

// SetSessionCookie writes the session token cookie expiring at exp.
func (m *Manager) SetSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, m.cookie(CookieName, token, exp))
}

// ClearSessionCookie expires the session cookie.
func (m *Manager) ClearSessionCookie(w http.ResponseWriter) {
	c := m.cookie(CookieName, "", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (m *Manager) cookie(name, value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
