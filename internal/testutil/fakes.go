package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/notification"
	"github.com/fekuna/campus-uniform-service/internal/order"
	"github.com/fekuna/campus-uniform-service/internal/salesreport"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
)

var (
	_ notification.Notifier   = (*Notifier)(nil)
	_ notification.Mailer     = (*Mailer)(nil)
	_ order.Locker            = (*Locker)(nil)
	_ salesreport.Indexer     = (*Indexer)(nil)
	_ schedule.BlackoutLookup = (*Announcements)(nil)
)

type SentNotification struct {
	UserID  string
	Roles   []model.Role
	Title   string
	Message string
}

type Notifier struct {
	mu   sync.Mutex
	Sent []SentNotification
}

func (n *Notifier) Notify(_ context.Context, userID, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, SentNotification{UserID: userID, Title: title, Message: message})
}

func (n *Notifier) NotifyRoles(_ context.Context, roles []model.Role, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, SentNotification{Roles: roles, Title: title, Message: message})
}

// Titles lists the titles sent so far, in order.
func (n *Notifier) Titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	titles := make([]string, len(n.Sent))
	for i, s := range n.Sent {
		titles[i] = s.Title
	}
	return titles
}

// Mailer records which emails were requested. Err makes every send fail.
type Mailer struct {
	mu   sync.Mutex
	Sent []string
	Err  error
}

func (m *Mailer) record(kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, kind)
	return m.Err
}

func (m *Mailer) SendScheduleEmail(context.Context, *model.Order) error {
	return m.record("schedule")
}

func (m *Mailer) SendPickupEmail(context.Context, *model.Order) error {
	return m.record("pickup")
}

func (m *Mailer) SendPaymentReminderEmail(context.Context, *model.Order) error {
	return m.record("payment_reminder")
}

func (m *Mailer) SendMeasurementDetailsEmail(context.Context, *model.Order) error {
	return m.record("measurement_details")
}

// Locker is a single-process lock table. Held keys make AcquireLock fail.
type Locker struct {
	mu       sync.Mutex
	held     map[string]string
	Acquired int
}

func NewLocker() *Locker {
	return &Locker{held: map[string]string{}}
}

func (l *Locker) AcquireLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = value
	l.Acquired++
	return true, nil
}

func (l *Locker) ReleaseLock(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == value {
		delete(l.held, key)
	}
	return nil
}

// Hold takes key on behalf of another instance.
func (l *Locker) Hold(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[key] = "other"
}

func (l *Locker) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok
}

type Indexer struct {
	mu      sync.Mutex
	Indexed []string
	Err     error
}

func (i *Indexer) IndexReport(_ context.Context, report *model.SalesReport) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return i.Err
	}
	i.Indexed = append(i.Indexed, report.ID)
	return nil
}

type Announcements struct {
	Items []model.Announcement
}

func (a *Announcements) FindBlackout(_ context.Context, day time.Time) (*model.Announcement, error) {
	return model.FindBlackout(a.Items, day), nil
}
