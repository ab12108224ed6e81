package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/and161185/medidesk/internal/model"
)

func (h *handlers) adminListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Users.List(r.Context())
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toUser))
}

func (h *handlers) adminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	u, err := h.Auth.CreateUser(r.Context(), req.Email, req.Name, req.Password, model.Role(req.Role))
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	h.log.Info("user created", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	writeJSON(w, http.StatusOK, toUser(*u))
}

func (h *handlers) adminListTickets(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tickets.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toTicket))
}

func (h *handlers) adminReply(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathID(r, "ticketId")
	if err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	var req replyRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	n, err := h.Tickets.Reply(r.Context(), ticketID, req.Message)
	if err != nil {
		h.fail(w, r, err, msgTicketNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toNotification(*n))
}

func (h *handlers) adminListNumbers(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	list, err := h.Numbers.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toNumber))
}

func (h *handlers) adminAddNumber(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	var req addNumberRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	n, err := h.Numbers.Add(r.Context(), userID, req.Number, req.Label)
	if err != nil {
		h.fail(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toNumber(*n))
}

func (h *handlers) adminDeleteNumber(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.fail(w, r, err, msgNumberNotFound)
		return
	}
	numberID, err := pathID(r, "numberId")
	if err != nil {
		h.fail(w, r, err, msgNumberNotFound)
		return
	}
	if err := h.Numbers.Delete(r.Context(), userID, numberID); err != nil {
		h.fail(w, r, err, msgNumberNotFound)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (h *handlers) adminLinkProduct(w http.ResponseWriter, r *http.Request) {
	var req linkProductRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, msgProductNotFound)
		return
	}
	p, err := h.Products.Link(r.Context(), req.UserID, req.ProductID)
	if err != nil {
		h.fail(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toUserProduct(*p))
}

func (h *handlers) adminUnlinkProduct(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	upID, err := pathID(r, "userProductId")
	if err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	if err := h.Products.Unlink(r.Context(), userID, upID); err != nil {
		h.fail(w, r, err, msgUserProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}
