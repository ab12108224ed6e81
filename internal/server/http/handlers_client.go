package httpserver

import (
	"net/http"

	"github.com/and161185/medidesk/internal/model"
)

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	_, eff := identity(r)
	list, err := h.Products.ListActive(r.Context(), eff)
	if err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toUserProduct))
}

func (h *handlers) listNumbers(w http.ResponseWriter, r *http.Request) {
	_, eff := identity(r)
	list, err := h.Numbers.List(r.Context(), eff)
	if err != nil {
		h.fail(w, r, err, msgNumberNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toNumber))
}

// Tickets and notifications belong to the session identity, not the override.

func (h *handlers) listTickets(w http.ResponseWriter, r *http.Request) {
	id, _ := identity(r)
	list, err := h.Tickets.List(r.Context(), id.ID)
	if err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toTicket))
}

func (h *handlers) createTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	id, _ := identity(r)
	t, err := h.Tickets.Open(r.Context(), id.ID, req.Subject, req.Message)
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toTicket(*t))
}

func (h *handlers) closeTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathID(r, "ticketId")
	if err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	id, _ := identity(r)
	if err := h.Tickets.Close(r.Context(), id.ID, ticketID); err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (h *handlers) listUnread(w http.ResponseWriter, r *http.Request) {
	id, _ := identity(r)
	list, err := h.Notifications.ListUnread(r.Context(), id.ID)
	if err != nil {
		h.fail(w, r, err, msgNotificationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toNotification))
}

func (h *handlers) markRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := pathID(r, "notificationId")
	if err != nil {
		h.fail(w, r, err, msgNotificationNotFound)
		return
	}
	id, _ := identity(r)
	if err := h.Notifications.MarkRead(r.Context(), id.ID, notificationID); err != nil {
		h.fail(w, r, err, msgNotificationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (h *handlers) getTalkSettings(w http.ResponseWriter, r *http.Request) {
	upID, err := queryID(r, "userProductId")
	if err != nil {
		h.fail(w, r, err, msgSettingsNotFound)
		return
	}
	_, eff := identity(r)
	s, err := h.Settings.TalkSettings(r.Context(), eff, upID)
	if err != nil {
		h.fail(w, r, err, msgSettingsNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toTalkSettings(s))
}

func (h *handlers) saveTalkSettings(w http.ResponseWriter, r *http.Request) {
	var req talkSettingsRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	_, eff := identity(r)
	s, err := h.Settings.SaveTalkSettings(r.Context(), eff, req.UserProductID, *req.Reconnaissance)
	if err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toTalkSettings(s))
}

func (h *handlers) getNumberRecognition(w http.ResponseWriter, r *http.Request) {
	upID, err := queryID(r, "userProductId")
	if err != nil {
		h.fail(w, r, err, msgSettingsNotFound)
		return
	}
	_, eff := identity(r)
	s, err := h.Settings.NumberRecognition(r.Context(), eff, upID)
	if err != nil {
		h.fail(w, r, err, msgSettingsNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toNumberRecognition(s))
}

func (h *handlers) saveNumberRecognition(w http.ResponseWriter, r *http.Request) {
	var req numberRecognitionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	_, eff := identity(r)
	s, err := h.Settings.SaveNumberRecognition(r.Context(), eff, req.UserProductID, *req.Enabled)
	if err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toNumberRecognition(s))
}

func toTalkSettings(s *model.TalkSettings) talkSettingsDTO {
	return talkSettingsDTO{UserProductID: s.UserProductID, Reconnaissance: s.Reconnaissance, UpdatedAt: s.UpdatedAt}
}

func toNumberRecognition(s *model.NumberRecognition) numberRecognitionDTO {
	return numberRecognitionDTO{UserProductID: s.UserProductID, Enabled: s.Enabled, UpdatedAt: s.UpdatedAt}
}
