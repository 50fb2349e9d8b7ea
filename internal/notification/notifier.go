package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/email"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/push"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

const (
	KindCreated     = "appointment.created"
	KindRescheduled = "appointment.rescheduled"
)

// KindFor names the event emitted when an appointment reaches status.
func KindFor(status string) string {
	return "appointment." + status
}

type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	PushTokensForUser(ctx context.Context, businessID, userID uint) ([]models.PushToken, error)
}

// Event describes one appointment change. Appointment must carry its
// Employee, Service and Customer.
type Event struct {
	Kind        string
	Business    models.Business
	Appointment models.Appointment
	From        string
	To          string
}

type payload struct {
	Kind            string    `json:"kind"`
	Reference       string    `json:"reference"`
	BusinessID      uint      `json:"business_id"`
	AppointmentID   uint      `json:"appointment_id"`
	EmployeeID      uint      `json:"employee_id"`
	ServiceID       uint      `json:"service_id"`
	CustomerID      *uint     `json:"customer_id,omitempty"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	From            string    `json:"from,omitempty"`
	To              string    `json:"to"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type Notifier struct {
	store     Store
	catalog   *plans.Catalog
	templates *email.Templates
	mailer    email.Sender
	pusher    push.Sender
	logger    *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	wg     sync.WaitGroup
	now    func() time.Time
}

type Options struct {
	Store     Store
	Catalog   *plans.Catalog
	Templates *email.Templates
	Mailer    email.Sender
	Pusher    push.Sender
	Logger    *slog.Logger
	Buffer    int
}

func NewNotifier(opts Options) *Notifier {
	if opts.Buffer <= 0 {
		opts.Buffer = 100
	}
	if opts.Mailer == nil {
		opts.Mailer = email.NoopSender{}
	}
	if opts.Pusher == nil {
		opts.Pusher = push.NoopSender{}
	}

	n := &Notifier{
		store:     opts.Store,
		catalog:   opts.Catalog,
		templates: opts.Templates,
		mailer:    opts.Mailer,
		pusher:    opts.Pusher,
		logger:    opts.Logger,
		queue:     make(chan Event, opts.Buffer),
		now:       time.Now,
	}

	n.wg.Add(1)
	go n.worker()
	return n
}

// Notify records the change in the outbox and queues email/push delivery.
// Only the outbox write is reported back.
func (n *Notifier) Notify(ctx context.Context, ev Event) error {
	ap := ev.Appointment

	body, err := json.Marshal(payload{
		Kind:            ev.Kind,
		Reference:       ap.Reference,
		BusinessID:      ap.BusinessID,
		AppointmentID:   ap.ID,
		EmployeeID:      ap.EmployeeID,
		ServiceID:       ap.ServiceID,
		CustomerID:      ap.CustomerID,
		Date:            ap.Date.UTC(),
		DurationMinutes: ap.DurationMinutes,
		From:            ev.From,
		To:              ev.To,
		OccurredAt:      n.now().UTC(),
	})
	if err != nil {
		return err
	}

	record := &models.Notification{
		ID:            uuid.NewString(),
		BusinessID:    ap.BusinessID,
		AppointmentID: ap.ID,
		Reference:     ap.Reference,
		Kind:          ev.Kind,
		FromStatus:    ev.From,
		ToStatus:      ev.To,
		Payload:       string(body),
	}
	if err := n.store.CreateNotification(ctx, record); err != nil {
		return err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		n.logger.Warn("notifier closed, skipping delivery", "kind", ev.Kind, "reference", ap.Reference)
		return nil
	}
	select {
	case n.queue <- ev:
	default:
		n.logger.Warn("notification queue full, dropping delivery", "kind", ev.Kind, "reference", ap.Reference)
	}
	return nil
}

// Close drains queued deliveries. Later Notify calls still write the outbox
// but skip delivery.
func (n *Notifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()
	n.wg.Wait()
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for ev := range n.queue {
		n.deliver(context.Background(), ev)
	}
}

func (n *Notifier) deliver(ctx context.Context, ev Event) {
	plan := n.catalog.For(ev.Business.Plan)

	if plan.Has(plans.FeatureEmail) {
		if err := n.sendEmail(ctx, ev); err != nil {
			n.logger.Error("notification email failed", "kind", ev.Kind, "reference", ev.Appointment.Reference, "err", err)
		}
	}
	if plan.Has(plans.FeaturePush) {
		if err := n.sendPush(ctx, ev); err != nil {
			n.logger.Error("notification push failed", "kind", ev.Kind, "reference", ev.Appointment.Reference, "err", err)
		}
	}
}

func templateName(kind string) string {
	return strings.ReplaceAll(kind, ".", "_")
}

func (n *Notifier) view(ev Event) email.Data {
	ap := ev.Appointment
	local := ap.Date.In(timezone.Location(ev.Business.Timezone))

	data := email.Data{
		BusinessName: ev.Business.Name,
		ServiceName:  ap.Service.Name,
		EmployeeName: ap.Employee.Name,
		Date:         local.Format("02/01/2006"),
		Time:         local.Format("15:04"),
		Reference:    ap.Reference,
	}
	if ap.Customer != nil {
		data.CustomerName = ap.Customer.Name
	}
	return data
}

func (n *Notifier) sendEmail(ctx context.Context, ev Event) error {
	ap := ev.Appointment
	if ap.Customer == nil || strings.TrimSpace(ap.Customer.Email) == "" {
		return nil
	}

	name := templateName(ev.Kind)
	if n.templates == nil || !n.templates.Has(name) {
		return nil
	}

	subject, body, err := n.templates.Render(name, n.view(ev))
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, ap.Customer.Email, subject, body)
}

func (n *Notifier) sendPush(ctx context.Context, ev Event) error {
	ap := ev.Appointment
	if ap.Employee.UserID == nil {
		return nil
	}

	tokens, err := n.store.PushTokensForUser(ctx, ap.BusinessID, *ap.Employee.UserID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	list := make([]string, 0, len(tokens))
	for _, t := range tokens {
		list = append(list, t.Token)
	}

	v := n.view(ev)
	title := ev.Business.Name
	if title == "" {
		title = "Agenda"
	}
	return n.pusher.Send(ctx, list, push.Message{
		Title: title,
		Body:  strings.TrimSpace(v.ServiceName + " " + v.Date + " " + v.Time + " (" + ev.To + ")"),
		Data: map[string]string{
			"kind":      ev.Kind,
			"reference": ap.Reference,
		},
	})
}
