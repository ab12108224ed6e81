package httpserver

import (
	"time"

	"github.com/and161185/medidesk/internal/model"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type setActiveUserRequest struct {
	UserID int64 `json:"userId" validate:"gt=0"`
}

type createTicketRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type replyRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

type talkSettingsRequest struct {
	UserProductID  int64 `json:"userProductId" validate:"gt=0"`
	Reconnaissance *bool `json:"reconnaissance" validate:"required"`
}

type numberRecognitionRequest struct {
	UserProductID int64 `json:"userProductId" validate:"gt=0"`
	Enabled       *bool `json:"enabled" validate:"required"`
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=200"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,role"`
}

type addNumberRequest struct {
	Number string `json:"number" validate:"required,max=32"`
	Label  string `json:"label" validate:"max=100"`
}

type linkProductRequest struct {
	UserID    int64 `json:"userId" validate:"gt=0"`
	ProductID int64 `json:"productId" validate:"gt=0"`
}

type userDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUser(u model.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

type userDetailsDTO struct {
	userDTO
	UserProductID *int64 `json:"userProductId"`
}

type identityDTO struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

type sessionDTO struct {
	User            identityDTO `json:"user"`
	EffectiveUserID int64       `json:"effectiveUserId"`
}

type loginResponse struct {
	OK   bool    `json:"ok"`
	User userDTO `json:"user"`
}

type userProductDTO struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserProduct(p model.UserProduct) userProductDTO {
	return userProductDTO{ID: p.ID, UserID: p.UserID, ProductID: p.ProductID, ProductName: p.ProductName, CreatedAt: p.CreatedAt}
}

type numberDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Number    string    `json:"number"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNumber(n model.UserNumber) numberDTO {
	return numberDTO{ID: n.ID, UserID: n.UserID, Number: n.Number, Label: n.Label, CreatedAt: n.CreatedAt}
}

type ticketDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTicket(t model.Ticket) ticketDTO {
	return ticketDTO{ID: t.ID, UserID: t.UserID, Subject: t.Subject, Message: t.Message, Status: string(t.Status), CreatedAt: t.CreatedAt}
}

type ticketRefDTO struct {
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
}

type notificationDTO struct {
	ID        int64         `json:"id"`
	TicketID  int64         `json:"ticketId"`
	Message   string        `json:"message"`
	ReadAt    *time.Time    `json:"readAt"`
	CreatedAt time.Time     `json:"createdAt"`
	Ticket    *ticketRefDTO `json:"ticket,omitempty"`
}

func toNotification(n model.Notification) notificationDTO {
	d := notificationDTO{ID: n.ID, TicketID: n.TicketID, Message: n.Message, ReadAt: n.ReadAt, CreatedAt: n.CreatedAt}
	if n.TicketSubject != "" {
		d.Ticket = &ticketRefDTO{Subject: n.TicketSubject, CreatedAt: n.TicketCreatedAt}
	}
	return d
}

type talkSettingsDTO struct {
	UserProductID  int64     `json:"userProductId"`
	Reconnaissance bool      `json:"reconnaissance"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type numberRecognitionDTO struct {
	UserProductID int64     `json:"userProductId"`
	Enabled       bool      `json:"enabled"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func mapSlice[T, D any](in []T, f func(T) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
