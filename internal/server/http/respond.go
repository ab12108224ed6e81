package httpserver

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/validate"
)

const (
	msgUnauthenticated = "Non authentifié"
	msgBadCredentials  = "Identifiants invalides"
	msgRateLimited     = "Trop de tentatives, réessayez plus tard"
	msgBadRequest      = "Requête invalide"
	msgEmailTaken      = "Cet e-mail est déjà utilisé"
	msgInternal        = "Erreur interne du serveur"

	msgUserNotFound         = "Utilisateur introuvable"
	msgUserProductNotFound  = "Produit introuvable pour cet utilisateur"
	msgProductNotFound      = "Utilisateur ou produit introuvable"
	msgNumberNotFound       = "Numéro introuvable pour cet utilisateur"
	msgTicketNotFound       = "Ticket introuvable"
	msgNotificationNotFound = "Notification introuvable"
	msgSettingsNotFound     = "Paramètres introuvables"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

type okBody struct {
	OK bool `json:"ok"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// fail maps a service error to the fixed 400/401/404/500 response set.
// notFound is the user-facing message of the route for errs.ErrNotFound.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var (
		fe *validate.FieldError
		ra *errs.RetryAfterError
	)
	switch {
	case errors.As(err, &fe):
		writeError(w, http.StatusBadRequest, fe.Error())
	case errors.Is(err, errs.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, msgEmailTaken)
	case errors.Is(err, errs.ErrBadRequest):
		writeError(w, http.StatusBadRequest, msgBadRequest)
	case errors.As(err, &ra):
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(ra.After.Seconds()))))
		writeError(w, http.StatusUnauthorized, msgRateLimited)
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusUnauthorized, msgRateLimited)
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, msgUnauthenticated)
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	default:
		h.log.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// deny answers 401 for a missing session or an unaccepted role.
func deny(w http.ResponseWriter, _ *http.Request, _ error) {
	writeError(w, http.StatusUnauthorized, msgUnauthenticated)
}

// decode reads a JSON body into dst and validates it.
func (h *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return errs.ErrBadRequest
	}
	return h.v.Struct(dst)
}

// pathID parses a positive integer route parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return parseID(chi.URLParam(r, name))
}

// queryID parses a positive integer query parameter.
func queryID(r *http.Request, name string) (int64, error) {
	return parseID(r.URL.Query().Get(name))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.ErrBadRequest
	}
	return id, nil
}
