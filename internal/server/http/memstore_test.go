package httpserver

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// memStore implements every repository interface over maps.
type memStore struct {
	users    map[int64]*model.User
	products map[int64]*model.UserProduct
	numbers  map[int64]*model.UserNumber
	tickets  []*model.Ticket
	notes    []*model.Notification
	talk     map[int64]*model.TalkSettings
	recog    map[int64]*model.NumberRecognition
	seq      int64
	pingErr  error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*model.User{},
		products: map[int64]*model.UserProduct{},
		numbers:  map[int64]*model.UserNumber{},
		talk:     map[int64]*model.TalkSettings{},
		recog:    map[int64]*model.NumberRecognition{},
		seq:      1000,
	}
}

func (m *memStore) next() int64 { m.seq++; return m.seq }

func (m *memStore) Ping(context.Context) error { return m.pingErr }

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, u *model.User) error {
	for _, x := range m.users {
		if x.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	u.ID, u.CreatedAt = m.next(), time.Now()
	c := *u
	m.users[u.ID] = &c
	return nil
}
func (m memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}
func (m memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (m memUsers) GetDetails(ctx context.Context, id, productID int64) (*model.UserDetails, error) {
	u, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &model.UserDetails{User: *u}
	var best int64
	for _, p := range m.products {
		if p.UserID == id && p.ProductID == productID && p.RemovedAt == nil && (best == 0 || p.ID < best) {
			best = p.ID
		}
	}
	if best != 0 {
		d.UserProductID = &best
	}
	return d, nil
}
func (m memUsers) List(context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memProducts struct{ *memStore }

func (m memProducts) Get(_ context.Context, id int64) (*model.UserProduct, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *p
	return &c, nil
}
func (m memProducts) ListActive(_ context.Context, userID int64) ([]model.UserProduct, error) {
	out := []model.UserProduct{}
	for _, p := range m.products {
		if p.UserID == userID && p.RemovedAt == nil {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (m memProducts) Link(_ context.Context, userID, productID int64) (*model.UserProduct, error) {
	names := map[int64]string{1: "Standard téléphonique", 2: "Assistant vocal"}
	if _, ok := m.users[userID]; !ok || names[productID] == "" {
		return nil, errs.ErrNotFound
	}
	p := &model.UserProduct{ID: m.next(), UserID: userID, ProductID: productID, ProductName: names[productID], CreatedAt: time.Now()}
	m.products[p.ID] = p
	c := *p
	return &c, nil
}
func (m memProducts) SoftDelete(_ context.Context, userID, id int64) error {
	p, ok := m.products[id]
	if !ok || p.UserID != userID || p.RemovedAt != nil {
		return errs.ErrNotFound
	}
	now := time.Now()
	p.RemovedAt = &now
	return nil
}

type memNumbers struct{ *memStore }

func (m memNumbers) Get(_ context.Context, id int64) (*model.UserNumber, error) {
	n, ok := m.numbers[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *n
	return &c, nil
}
func (m memNumbers) ListByUser(_ context.Context, userID int64) ([]model.UserNumber, error) {
	out := []model.UserNumber{}
	for _, n := range m.numbers {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (m memNumbers) Create(_ context.Context, n *model.UserNumber) error {
	if _, ok := m.users[n.UserID]; !ok {
		return errs.ErrNotFound
	}
	n.ID, n.CreatedAt = m.next(), time.Now()
	c := *n
	m.numbers[n.ID] = &c
	return nil
}
func (m memNumbers) Delete(_ context.Context, userID, id int64) error {
	n, ok := m.numbers[id]
	if !ok || n.UserID != userID {
		return errs.ErrNotFound
	}
	delete(m.numbers, id)
	return nil
}

type memTickets struct{ *memStore }

func (m memTickets) Create(_ context.Context, t *model.Ticket) error {
	t.ID, t.Status, t.CreatedAt = m.next(), model.TicketOpen, time.Now()
	c := *t
	m.tickets = append(m.tickets, &c)
	return nil
}
func (m memTickets) ListByUser(_ context.Context, userID int64) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for i := len(m.tickets) - 1; i >= 0; i-- {
		if m.tickets[i].UserID == userID {
			out = append(out, *m.tickets[i])
		}
	}
	return out, nil
}
func (m memTickets) ListAll(context.Context) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for i := len(m.tickets) - 1; i >= 0; i-- {
		out = append(out, *m.tickets[i])
	}
	return out, nil
}
func (m memTickets) Close(_ context.Context, userID, id int64) error {
	for _, t := range m.tickets {
		if t.ID == id && t.UserID == userID {
			t.Status = model.TicketClosed
			return nil
		}
	}
	return errs.ErrNotFound
}

type memNotes struct{ *memStore }

func (m memNotes) CreateForTicket(_ context.Context, ticketID int64, message string) (*model.Notification, error) {
	for _, t := range m.tickets {
		if t.ID == ticketID {
			n := &model.Notification{ID: m.next(), UserID: t.UserID, TicketID: t.ID, Message: message, CreatedAt: time.Now()}
			m.notes = append(m.notes, n)
			c := *n
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (m memNotes) ListUnread(_ context.Context, userID int64) ([]model.Notification, error) {
	out := []model.Notification{}
	for _, n := range m.notes {
		if n.UserID != userID || n.ReadAt != nil {
			continue
		}
		c := *n
		for _, t := range m.tickets {
			if t.ID == n.TicketID {
				c.TicketSubject, c.TicketCreatedAt = t.Subject, t.CreatedAt
			}
		}
		out = append(out, c)
	}
	return out, nil
}
func (m memNotes) MarkRead(_ context.Context, userID, id int64) error {
	for _, n := range m.notes {
		if n.ID == id && n.UserID == userID {
			now := time.Now()
			n.ReadAt = &now
			return nil
		}
	}
	return errs.ErrNotFound
}

type memSettings struct{ *memStore }

func (m memSettings) UpsertTalkSettings(_ context.Context, id int64, v bool) (*model.TalkSettings, error) {
	s := &model.TalkSettings{UserProductID: id, Reconnaissance: v, UpdatedAt: time.Now()}
	m.talk[id] = s
	c := *s
	return &c, nil
}
func (m memSettings) GetTalkSettings(_ context.Context, id int64) (*model.TalkSettings, error) {
	s, ok := m.talk[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}
func (m memSettings) UpsertNumberRecognition(_ context.Context, id int64, v bool) (*model.NumberRecognition, error) {
	s := &model.NumberRecognition{UserProductID: id, Enabled: v, UpdatedAt: time.Now()}
	m.recog[id] = s
	c := *s
	return &c, nil
}
func (m memSettings) GetNumberRecognition(_ context.Context, id int64) (*model.NumberRecognition, error) {
	s, ok := m.recog[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}

type openLimiter struct {
	blocked bool
}

func (l *openLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	if l.blocked {
		return false, 90 * time.Second, nil
	}
	return true, 0, nil
}
func (l *openLimiter) Success(context.Context, string, []byte) error { return nil }
func (l *openLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	return false, 0, nil
}
