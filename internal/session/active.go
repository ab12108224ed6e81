package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/and161185/medidesk/internal/model"
)

// ActiveUserCookie names the override cookie selecting the user a session acts as.
//
// The cookie is not checked against the caller's relationship to the target
// user; every scoped handler must go through the ownership guard with the
// effective user id.
const ActiveUserCookie = "activeUserId"

// SetActiveUser writes the override cookie for userID.
func (m *Manager) SetActiveUser(w http.ResponseWriter, userID int64) {
	http.SetCookie(w, m.cookie(ActiveUserCookie, strconv.FormatInt(userID, 10), m.now().Add(m.ttl)))
}

// ClearActiveUser expires the override cookie.
func (m *Manager) ClearActiveUser(w http.ResponseWriter) {
	c := m.cookie(ActiveUserCookie, "", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
}

// ResolveEffectiveUserID returns the override when it parses to a non-zero
// integer and the identity id otherwise.
func ResolveEffectiveUserID(id model.Identity, override string) int64 {
	if override == "" {
		return id.ID
	}
	v, err := strconv.ParseInt(override, 10, 64)
	if err != nil || v == 0 {
		return id.ID
	}
	return v
}

// EffectiveUserID applies ResolveEffectiveUserID to the override cookie of r.
func EffectiveUserID(r *http.Request, id model.Identity) int64 {
	ck, err := r.Cookie(ActiveUserCookie)
	if err != nil {
		return id.ID
	}
	return ResolveEffectiveUserID(id, ck.Value)
}
