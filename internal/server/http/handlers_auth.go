package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/and161185/medidesk/internal/errs"
)

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	tok, u, err := h.Auth.Login(r.Context(), req.Email, req.Password, r.RemoteAddr)
	switch {
	case errors.Is(err, errs.ErrRateLimited):
		loginFailures.WithLabelValues("rate_limited").Inc()
		h.fail(w, r, err, "")
		return
	case errors.Is(err, errs.ErrUnauthorized):
		loginFailures.WithLabelValues("bad_credentials").Inc()
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	case err != nil:
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	h.Sessions.SetSessionCookie(w, tok.Token, tok.ExpiresAt)
	h.Sessions.ClearActiveUser(w)
	h.log.Info("login", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	writeJSON(w, http.StatusOK, loginResponse{OK: true, User: toUser(u)})
}

func (h *handlers) logout(w http.ResponseWriter, _ *http.Request) {
	h.Sessions.ClearSessionCookie(w)
	h.Sessions.ClearActiveUser(w)
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (h *handlers) currentSession(w http.ResponseWriter, r *http.Request) {
	id, eff := identity(r)
	writeJSON(w, http.StatusOK, sessionDTO{
		User:            identityDTO{ID: id.ID, Role: string(id.Role)},
		EffectiveUserID: eff,
	})
}

func (h *handlers) setActiveUser(w http.ResponseWriter, r *http.Request) {
	var req setActiveUserRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	h.Sessions.SetActiveUser(w, req.UserID)
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (h *handlers) clearActiveUser(w http.ResponseWriter, _ *http.Request) {
	h.Sessions.ClearActiveUser(w)
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	id, eff := identity(r)
	d, err := h.Users.Get(r.Context(), id, eff, userID)
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, userDetailsDTO{userDTO: toUser(d.User), UserProductID: d.UserProductID})
}

