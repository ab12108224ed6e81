// Package model defines domain entities used by services and repositories.
package model

import (
	"strings"
	"time"
)

// Role is the dashboard role of an account.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole converts a stored or submitted role name, case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleClient:
		return RoleClient, true
	}
	return "", false
}

// ProductVoiceAssistant is the product whose first active link is exposed as userProductId.
const ProductVoiceAssistant int64 = 2

// Identity is the authenticated principal resolved from a session. Immutable per request.
type Identity struct {
	ID   int64
	Role Role
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// User represents an account. The password hash is never serialized to clients.
type User struct {
	ID        int64
	Email     string // unique
	Name      string
	Role      Role
	PwdHash   string // encoded argon2id hash
	CreatedAt time.Time
}

// UserDetails is a user augmented with its first active voice-assistant link.
type UserDetails struct {
	User
	UserProductID *int64 // nil when no active link exists
}

// ResourceType names a kind of user-owned record checked by the ownership guard.
type ResourceType string

const (
	ResourceUserProduct ResourceType = "userProduct"
	ResourceUserNumber  ResourceType = "userNumber"
)

// ScopedResource is a persisted record with an owning user id.
type ScopedResource interface {
	OwnerID() int64
	// SoftDeleted reports whether the record carries a removal marker.
	SoftDeleted() bool
}

// Product is a catalogue entry a user can subscribe to.
type Product struct {
	ID   int64
	Name string
}

// UserProduct links a user to a product; RemovedAt marks a soft delete.
type UserProduct struct {
	ID          int64
	UserID      int64
	ProductID   int64
	ProductName string
	RemovedAt   *time.Time
	CreatedAt   time.Time
}

func (p *UserProduct) OwnerID() int64    { return p.UserID }
func (p *UserProduct) SoftDeleted() bool { return p.RemovedAt != nil }

// UserNumber is a phone number registered for a user.
type UserNumber struct {
	ID        int64
	UserID    int64
	Number    string
	Label     string
	CreatedAt time.Time
}

func (n *UserNumber) OwnerID() int64  { return n.UserID }
func (*UserNumber) SoftDeleted() bool { return false }

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "OPEN"
	TicketClosed TicketStatus = "CLOSED"
)

// Ticket is a support request opened by a user.
type Ticket struct {
	ID        int64
	UserID    int64
	Subject   string
	Message   string
	Status    TicketStatus
	CreatedAt time.Time
}

// Notification informs a user about activity on one of their tickets.
type Notification struct {
	ID        int64
	UserID    int64
	TicketID  int64
	Message   string
	ReadAt    *time.Time // nil while unread
	CreatedAt time.Time

	// Parent ticket fields, filled by unread listing.
	TicketSubject   string
	TicketCreatedAt time.Time
}

// TalkSettings configures the voice assistant of one user product.
type TalkSettings struct {
	UserProductID  int64
	Reconnaissance bool
	UpdatedAt      time.Time
}

// NumberRecognition toggles caller-number recognition for one user product.
type NumberRecognition struct {
	UserProductID int64
	Enabled       bool
	UpdatedAt     time.Time
}

// SessionToken is a signed session artifact with its expiry.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}
