// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/medidesk/internal/model"
)

// UserRepository provides access to accounts.
type UserRepository interface {
	// Create inserts a new user and fills its ID and CreatedAt.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail loads a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetDetails loads a user with its first active link to productID.
	GetDetails(ctx context.Context, id, productID int64) (*model.UserDetails, error)
	// List returns all users ordered by ID.
	List(ctx context.Context) ([]model.User, error)
}

// UserProductRepository provides access to user/product links.
type UserProductRepository interface {
	// Get loads a link by ID regardless of owner or removal marker.
	Get(ctx context.Context, id int64) (*model.UserProduct, error)
	// ListActive returns the links of a user that are not soft-deleted.
	ListActive(ctx context.Context, userID int64) ([]model.UserProduct, error)
	// Link creates a new active link.
	Link(ctx context.Context, userID, productID int64) (*model.UserProduct, error)
	// SoftDelete sets removed_at on an active link owned by userID.
	SoftDelete(ctx context.Context, userID, id int64) error
}

// NumberRepository provides access to user phone numbers.
type NumberRepository interface {
	// Get loads a number by ID regardless of owner.
	Get(ctx context.Context, id int64) (*model.UserNumber, error)
	// ListByUser returns the numbers of a user.
	ListByUser(ctx context.Context, userID int64) ([]model.UserNumber, error)
	// Create inserts a number and fills its ID and CreatedAt.
	Create(ctx context.Context, n *model.UserNumber) error
	// Delete removes a number owned by userID.
	Delete(ctx context.Context, userID, id int64) error
}

// TicketRepository provides access to support tickets.
type TicketRepository interface {
	// Create inserts a ticket and fills ID, Status and CreatedAt.
	Create(ctx context.Context, t *model.Ticket) error
	// ListByUser returns tickets owned by userID, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Ticket, error)
	// ListAll returns every ticket, newest first.
	ListAll(ctx context.Context) ([]model.Ticket, error)
	// Close marks a ticket owned by userID as closed.
	Close(ctx context.Context, userID, id int64) error
}

// NotificationRepository provides access to ticket notifications.
type NotificationRepository interface {
	// CreateForTicket notifies the owner of ticketID.
	CreateForTicket(ctx context.Context, ticketID int64, message string) (*model.Notification, error)
	// ListUnread returns unread notifications of userID joined with their ticket.
	ListUnread(ctx context.Context, userID int64) ([]model.Notification, error)
	// MarkRead sets read_at on a notification owned by userID.
	MarkRead(ctx context.Context, userID, id int64) error
}

// SettingsRepository provides per-user-product configuration rows.
type SettingsRepository interface {
	// UpsertTalkSettings creates or updates the row keyed by userProductID.
	UpsertTalkSettings(ctx context.Context, userProductID int64, reconnaissance bool) (*model.TalkSettings, error)
	// GetTalkSettings loads the row keyed by userProductID.
	GetTalkSettings(ctx context.Context, userProductID int64) (*model.TalkSettings, error)
	// UpsertNumberRecognition creates or updates the row keyed by userProductID.
	UpsertNumberRecognition(ctx context.Context, userProductID int64, enabled bool) (*model.NumberRecognition, error)
	// GetNumberRecognition loads the row keyed by userProductID.
	GetNumberRecognition(ctx context.Context, userProductID int64) (*model.NumberRecognition, error)
}
