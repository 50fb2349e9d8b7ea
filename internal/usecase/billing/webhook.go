package billing

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/billing"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/payment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/metrics"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
)

const (
	OutcomeApplied   = "applied"
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

type WebhookResult struct {
	Outcome    string `json:"status"`
	EventID    string `json:"event_id,omitempty"`
	BusinessID uint   `json:"-"`
}

type HandleWebhook struct {
	repo     domain.Repository
	catalog  *plans.Catalog
	gateways map[string]payment.Gateway
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewHandleWebhook(
	repo domain.Repository,
	catalog *plans.Catalog,
	gateways map[string]payment.Gateway,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *HandleWebhook {
	return &HandleWebhook{
		repo:     repo,
		catalog:  catalog,
		gateways: gateways,
		audit:    audit,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute verifies a provider notification and applies it at most once.
func (uc *HandleWebhook) Execute(
	ctx context.Context,
	provider string,
	body []byte,
	header http.Header,
) (*WebhookResult, error) {

	gw, ok := uc.gateways[provider]
	if !ok || gw == nil {
		return nil, httperr.ErrBusinessDetail("gateway_unconfigured", provider)
	}

	ev, err := gw.ParseWebhook(ctx, body, header)
	if err != nil {
		uc.metrics.WebhookEvent(provider, OutcomeRejected)
		return nil, err
	}

	sub, businessPlan := uc.subscriptionFor(ev)
	outcome := OutcomeIgnored
	if sub != nil {
		outcome = OutcomeApplied
	}

	duplicate, err := uc.repo.RecordPaymentEvent(ctx, &models.PaymentEvent{
		Provider: ev.Provider,
		EventID:  ev.ID,
		Type:     ev.Type,
		Payload:  string(ev.Payload),
	}, sub, businessPlan)
	if err != nil {
		return nil, err
	}
	if duplicate {
		outcome = OutcomeDuplicate
	}

	uc.metrics.WebhookEvent(provider, outcome)
	uc.logger.Info("payment webhook processed",
		"provider", provider,
		"event_id", ev.ID,
		"type", ev.Type,
		"business_id", ev.BusinessID,
		"outcome", outcome,
	)

	if outcome == OutcomeApplied && uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: ev.BusinessID,
			Action:     "subscription." + string(ev.Kind),
			Entity:     "subscription",
			Metadata: map[string]any{
				"provider": ev.Provider,
				"event_id": ev.ID,
				"plan":     businessPlan,
				"status":   sub.Status,
			},
		})
	}

	return &WebhookResult{Outcome: outcome, EventID: ev.ID, BusinessID: ev.BusinessID}, nil
}

// subscriptionFor reduces an event to the subscription row and business plan it
// implies. Events that change nothing return a nil subscription.
func (uc *HandleWebhook) subscriptionFor(ev *payment.WebhookEvent) (*models.Subscription, string) {
	if ev.BusinessID == 0 {
		return nil, ""
	}

	sub := &models.Subscription{
		BusinessID:       ev.BusinessID,
		Provider:         ev.Provider,
		CustomerRef:      ev.CustomerRef,
		SubscriptionRef:  ev.SubscriptionRef,
		Plan:             ev.Plan,
		Status:           ev.Status,
		CurrentPeriodEnd: ev.CurrentPeriodEnd,
	}

	switch ev.Kind {
	case payment.EventActivated:
		plan, err := uc.catalog.Get(ev.Plan)
		if err != nil {
			uc.logger.Warn("payment webhook for unknown plan", "provider", ev.Provider, "event_id", ev.ID, "plan", ev.Plan)
			return nil, ""
		}
		if sub.Status == "" {
			sub.Status = "active"
		}
		return sub, plan.Code

	case payment.EventCanceled:
		if sub.Status == "" {
			sub.Status = "canceled"
		}
		return sub, uc.catalog.Default

	default:
		return nil, ""
	}
}
