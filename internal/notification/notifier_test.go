package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/email"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/push"
	"github.com/BruksfildServices01/agenda-marketplace/internal/logging"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
)

type memStore struct {
	mu      sync.Mutex
	records []models.Notification
	tokens  []models.PushToken
	err     error
}

func (s *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *n)
	return nil
}

func (s *memStore) PushTokensForUser(_ context.Context, _, _ uint) ([]models.PushToken, error) {
	return s.tokens, nil
}

type sentMail struct{ to, subject, body string }

type memMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *memMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type memPusher struct {
	mu     sync.Mutex
	tokens []string
	msgs   []push.Message
}

func (p *memPusher) Send(_ context.Context, tokens []string, msg push.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens = append(p.tokens, tokens...)
	p.msgs = append(p.msgs, msg)
	return nil
}

func newNotifier(t *testing.T, store *memStore, mailer *memMailer, pusher *memPusher) *Notifier {
	t.Helper()
	catalog, err := plans.Default()
	require.NoError(t, err)
	templates, err := email.DefaultTemplates()
	require.NoError(t, err)

	return NewNotifier(Options{
		Store:     store,
		Catalog:   catalog,
		Templates: templates,
		Mailer:    mailer,
		Pusher:    pusher,
		Logger:    logging.Discard(),
	})
}

func sampleEvent(plan string) Event {
	userID := uint(77)
	customerID := uint(5)
	return Event{
		Kind:     KindFor("confirmed"),
		Business: models.Business{ID: 1, Name: "Studio Ana", Timezone: "America/Sao_Paulo", Plan: plan},
		Appointment: models.Appointment{
			ID:              10,
			Reference:       "ref-10",
			BusinessID:      1,
			EmployeeID:      2,
			Employee:        models.Employee{ID: 2, Name: "Ana", UserID: &userID},
			ServiceID:       3,
			Service:         models.Service{ID: 3, Name: "Corte"},
			CustomerID:      &customerID,
			Customer:        &models.Customer{ID: 5, Name: "Joao", Email: "joao@example.com"},
			Date:            time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
		},
		From: "pending",
		To:   "confirmed",
	}
}

func TestNotify_WritesOutboxAndDelivers(t *testing.T) {
	store := &memStore{tokens: []models.PushToken{{Token: "tok-1"}}}
	mailer := &memMailer{}
	pusher := &memPusher{}
	n := newNotifier(t, store, mailer, pusher)

	require.NoError(t, n.Notify(context.Background(), sampleEvent("pro")))
	n.Close()

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "appointment.confirmed", rec.Kind)
	assert.Equal(t, "pending", rec.FromStatus)
	assert.Equal(t, "confirmed", rec.ToStatus)

	var p map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.Payload), &p))
	assert.Equal(t, "ref-10", p["reference"])
	assert.Equal(t, "confirmed", p["to"])

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "joao@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "10:00")

	assert.Equal(t, []string{"tok-1"}, pusher.tokens)
	assert.Equal(t, "ref-10", pusher.msgs[0].Data["reference"])
}

func TestNotify_FreePlanSkipsDelivery(t *testing.T) {
	store := &memStore{tokens: []models.PushToken{{Token: "tok-1"}}}
	mailer := &memMailer{}
	pusher := &memPusher{}
	n := newNotifier(t, store, mailer, pusher)

	require.NoError(t, n.Notify(context.Background(), sampleEvent("free")))
	n.Close()

	assert.Len(t, store.records, 1)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, pusher.msgs)
}

func TestNotify_NoCustomerEmailNoEmployeeUser(t *testing.T) {
	store := &memStore{}
	mailer := &memMailer{}
	pusher := &memPusher{}
	n := newNotifier(t, store, mailer, pusher)

	ev := sampleEvent("business")
	ev.Appointment.Customer = nil
	ev.Appointment.Employee.UserID = nil

	require.NoError(t, n.Notify(context.Background(), ev))
	n.Close()

	assert.Empty(t, mailer.sent)
	assert.Empty(t, pusher.msgs)
}

func TestNotify_OutboxErrorIsReturned(t *testing.T) {
	store := &memStore{err: errors.New("db down")}
	mailer := &memMailer{}
	n := newNotifier(t, store, mailer, &memPusher{})

	assert.Error(t, n.Notify(context.Background(), sampleEvent("pro")))
	n.Close()

	assert.Empty(t, mailer.sent)
}

func TestNotify_AfterCloseKeepsOutboxOnly(t *testing.T) {
	store := &memStore{}
	mailer := &memMailer{}
	n := newNotifier(t, store, mailer, &memPusher{})
	n.Close()

	assert.NotPanics(t, func() {
		assert.NoError(t, n.Notify(context.Background(), sampleEvent("pro")))
	})
	assert.NotPanics(t, n.Close)

	assert.Len(t, store.records, 1)
	assert.Empty(t, mailer.sent)
}

func TestKindAndTemplateName(t *testing.T) {
	assert.Equal(t, "appointment.no_show", KindFor("no_show"))
	assert.Equal(t, "appointment_no_show", templateName(KindFor("no_show")))
	assert.Equal(t, "appointment_created", templateName(KindCreated))
}
