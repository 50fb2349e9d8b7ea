package payment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
)

const (
	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
)

type CheckoutRequest struct {
	BusinessID uint
	Email      string
	Plan       plans.Plan
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type PortalRequest struct {
	CustomerRef string
	ReturnURL   string
}

type EventKind string

const (
	EventActivated EventKind = "activated"
	EventCanceled  EventKind = "canceled"
	EventIgnored   EventKind = "ignored"
)

// WebhookEvent is a verified provider notification reduced to what billing needs.
type WebhookEvent struct {
	Provider string
	ID       string
	Type     string
	Kind     EventKind

	BusinessID       uint
	Plan             string
	CustomerRef      string
	SubscriptionRef  string
	Status           string
	CurrentPeriodEnd *time.Time

	Payload []byte
}

type Gateway interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	CreatePortalSession(ctx context.Context, req PortalRequest) (string, error)
	ParseWebhook(ctx context.Context, body []byte, header http.Header) (*WebhookEvent, error)
}

// externalReference ties a provider object back to a business and plan.
func externalReference(businessID uint, plan string) string {
	return fmt.Sprintf("business:%d:plan:%s", businessID, plan)
}

func parseExternalReference(ref string) (uint, string, bool) {
	parts := strings.Split(ref, ":")
	if len(parts) != 4 || parts[0] != "business" || parts[2] != "plan" || parts[3] == "" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return 0, "", false
	}
	return uint(id), parts[3], true
}

func parseBusinessID(s string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
