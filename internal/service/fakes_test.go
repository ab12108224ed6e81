package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/limiter"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository"
)

type fakeUsers struct {
	byID      map[int64]*model.User
	nextID    int64
	createErr error
	getErr    error
	links     map[int64]int64 // user id -> voice-assistant link id
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byID == nil {
		f.byID = map[int64]*model.User{}
	}
	for _, x := range f.byID {
		if x.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	f.nextID++
	u.ID, u.CreatedAt = f.nextID, time.Now()
	cpy := *u
	f.byID[u.ID] = &cpy
	return nil
}
func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (f *fakeUsers) GetDetails(ctx context.Context, id, _ int64) (*model.UserDetails, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &model.UserDetails{User: *u}
	if link, ok := f.links[id]; ok {
		d.UserProductID = &link
	}
	return d, nil
}
func (f *fakeUsers) List(context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeProducts struct {
	rows   map[int64]*model.UserProduct
	nextID int64
}

var _ repository.UserProductRepository = (*fakeProducts)(nil)

func (f *fakeProducts) Get(_ context.Context, id int64) (*model.UserProduct, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *p
	return &c, nil
}
func (f *fakeProducts) ListActive(_ context.Context, userID int64) ([]model.UserProduct, error) {
	out := []model.UserProduct{}
	for _, p := range f.rows {
		if p.UserID == userID && p.RemovedAt == nil {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeProducts) Link(_ context.Context, userID, productID int64) (*model.UserProduct, error) {
	if productID != 1 && productID != 2 {
		return nil, errs.ErrNotFound
	}
	if f.rows == nil {
		f.rows = map[int64]*model.UserProduct{}
	}
	f.nextID++
	p := &model.UserProduct{ID: f.nextID, UserID: userID, ProductID: productID, CreatedAt: time.Now()}
	f.rows[p.ID] = p
	c := *p
	return &c, nil
}
func (f *fakeProducts) SoftDelete(_ context.Context, userID, id int64) error {
	p, ok := f.rows[id]
	if !ok || p.UserID != userID || p.RemovedAt != nil {
		return errs.ErrNotFound
	}
	now := time.Now()
	p.RemovedAt = &now
	return nil
}

type fakeNumbers struct {
	rows      map[int64]*model.UserNumber
	nextID    int64
	deleteHit int
}

var _ repository.NumberRepository = (*fakeNumbers)(nil)

func (f *fakeNumbers) Get(_ context.Context, id int64) (*model.UserNumber, error) {
	n, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *n
	return &c, nil
}
func (f *fakeNumbers) ListByUser(_ context.Context, userID int64) ([]model.UserNumber, error) {
	out := []model.UserNumber{}
	for _, n := range f.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeNumbers) Create(_ context.Context, n *model.UserNumber) error {
	if f.rows == nil {
		f.rows = map[int64]*model.UserNumber{}
	}
	f.nextID++
	n.ID = f.nextID
	c := *n
	f.rows[n.ID] = &c
	return nil
}
func (f *fakeNumbers) Delete(_ context.Context, userID, id int64) error {
	f.deleteHit++
	n, ok := f.rows[id]
	if !ok || n.UserID != userID {
		return errs.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeTickets struct {
	rows   []*model.Ticket
	nextID int64
}

var _ repository.TicketRepository = (*fakeTickets)(nil)

func (f *fakeTickets) Create(_ context.Context, t *model.Ticket) error {
	f.nextID++
	t.ID, t.Status, t.CreatedAt = f.nextID, model.TicketOpen, time.Now()
	c := *t
	f.rows = append(f.rows, &c)
	return nil
}
func (f *fakeTickets) ListByUser(_ context.Context, userID int64) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID {
			out = append(out, *f.rows[i])
		}
	}
	return out, nil
}
func (f *fakeTickets) ListAll(context.Context) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for i := len(f.rows) - 1; i >= 0; i-- {
		out = append(out, *f.rows[i])
	}
	return out, nil
}
func (f *fakeTickets) Close(_ context.Context, userID, id int64) error {
	for _, t := range f.rows {
		if t.ID == id && t.UserID == userID {
			t.Status = model.TicketClosed
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeNotifications struct {
	tickets *fakeTickets
	rows    []*model.Notification
	nextID  int64
}

var _ repository.NotificationRepository = (*fakeNotifications)(nil)

func (f *fakeNotifications) CreateForTicket(_ context.Context, ticketID int64, message string) (*model.Notification, error) {
	for _, t := range f.tickets.rows {
		if t.ID == ticketID {
			f.nextID++
			n := &model.Notification{ID: f.nextID, UserID: t.UserID, TicketID: t.ID, Message: message, CreatedAt: time.Now(),
				TicketSubject: t.Subject, TicketCreatedAt: t.CreatedAt}
			f.rows = append(f.rows, n)
			c := *n
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (f *fakeNotifications) ListUnread(_ context.Context, userID int64) ([]model.Notification, error) {
	out := []model.Notification{}
	for _, n := range f.rows {
		if n.UserID == userID && n.ReadAt == nil {
			out = append(out, *n)
		}
	}
	return out, nil
}
func (f *fakeNotifications) MarkRead(_ context.Context, userID, id int64) error {
	for _, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			if n.ReadAt == nil {
				now := time.Now()
				n.ReadAt = &now
			}
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeSettings struct {
	talk  map[int64]*model.TalkSettings
	recog map[int64]*model.NumberRecognition
}

var _ repository.SettingsRepository = (*fakeSettings)(nil)

func (f *fakeSettings) UpsertTalkSettings(_ context.Context, id int64, v bool) (*model.TalkSettings, error) {
	if f.talk == nil {
		f.talk = map[int64]*model.TalkSettings{}
	}
	s := &model.TalkSettings{UserProductID: id, Reconnaissance: v, UpdatedAt: time.Now()}
	f.talk[id] = s
	c := *s
	return &c, nil
}
func (f *fakeSettings) GetTalkSettings(_ context.Context, id int64) (*model.TalkSettings, error) {
	s, ok := f.talk[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}
func (f *fakeSettings) UpsertNumberRecognition(_ context.Context, id int64, v bool) (*model.NumberRecognition, error) {
	if f.recog == nil {
		f.recog = map[int64]*model.NumberRecognition{}
	}
	s := &model.NumberRecognition{UserProductID: id, Enabled: v, UpdatedAt: time.Now()}
	f.recog[id] = s
	c := *s
	return &c, nil
}
func (f *fakeSettings) GetNumberRecognition(_ context.Context, id int64) (*model.NumberRecognition, error) {
	s, ok := f.recog[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error
	retry    time.Duration

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
	lastEmail    string
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(_ context.Context, email string, _ []byte) (bool, time.Duration, error) {
	l.allowCalls++
	l.lastEmail = email
	return l.allowOK, l.retry, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, l.retry, l.failErr
}

type fakeIssuer struct {
	last model.Identity
	err  error
}

func (f *fakeIssuer) Issue(id model.Identity) (string, time.Time, error) {
	f.last = id
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "tok-" + string(id.Role), time.Now().Add(time.Hour), nil
}
