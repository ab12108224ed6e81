package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository"
)

// TicketService handles support tickets and the replies sent to their owners.
type TicketService interface {
	// List returns the tickets of userID, newest first.
	List(ctx context.Context, userID int64) ([]model.Ticket, error)
	// ListAll returns every ticket, newest first.
	ListAll(ctx context.Context) ([]model.Ticket, error)
	// Open creates an OPEN ticket for userID.
	Open(ctx context.Context, userID int64, subject, message string) (*model.Ticket, error)
	// Close closes a ticket owned by userID.
	Close(ctx context.Context, userID, ticketID int64) error
	// Reply notifies the owner of ticketID.
	Reply(ctx context.Context, ticketID int64, message string) (*model.Notification, error)
}

type TicketServiceImpl struct {
	tickets repository.TicketRepository
	notes   repository.NotificationRepository
}

// NewTicketService constructs TicketService.
func NewTicketService(tickets repository.TicketRepository, notes repository.NotificationRepository) *TicketServiceImpl {
	return &TicketServiceImpl{tickets: tickets, notes: notes}
}

func (s *TicketServiceImpl) List(ctx context.Context, userID int64) ([]model.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

func (s *TicketServiceImpl) ListAll(ctx context.Context) ([]model.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

func (s *TicketServiceImpl) Open(ctx context.Context, userID int64, subject, message string) (*model.Ticket, error) {
	subject, message = strings.TrimSpace(subject), strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, fmt.Errorf("%w: subject/message", errs.ErrBadRequest)
	}
	t := &model.Ticket{UserID: userID, Subject: subject, Message: message}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketServiceImpl) Close(ctx context.Context, userID, ticketID int64) error {
	return s.tickets.Close(ctx, userID, ticketID)
}

func (s *TicketServiceImpl) Reply(ctx context.Context, ticketID int64, message string) (*model.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message", errs.ErrBadRequest)
	}
	return s.notes.CreateForTicket(ctx, ticketID, message)
}

// NotificationService reads and acknowledges ticket notifications.
type NotificationService interface {
	// ListUnread returns the unread notifications of userID with their ticket.
	ListUnread(ctx context.Context, userID int64) ([]model.Notification, error)
	// MarkRead acknowledges a notification owned by userID.
	MarkRead(ctx context.Context, userID, notificationID int64) error
}

type NotificationServiceImpl struct {
	notes repository.NotificationRepository
}

// NewNotificationService constructs NotificationService.
func NewNotificationService(notes repository.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{notes: notes}
}

func (s *NotificationServiceImpl) ListUnread(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.notes.ListUnread(ctx, userID)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notes.MarkRead(ctx, userID, notificationID)
}
