package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
)

type StripeConfig struct {
	SecretKey        string
	WebhookSecret    string
	WebhookTolerance time.Duration
}

type StripeGateway struct {
	webhookSecret string
	tolerance     time.Duration
}

func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	stripe.Key = strings.TrimSpace(cfg.SecretKey)

	tol := cfg.WebhookTolerance
	if tol <= 0 {
		tol = 5 * time.Minute
	}
	return &StripeGateway{
		webhookSecret: strings.TrimSpace(cfg.WebhookSecret),
		tolerance:     tol,
	}
}

var _ Gateway = (*StripeGateway)(nil)

func (g *StripeGateway) Name() string { return ProviderStripe }

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if strings.TrimSpace(req.Plan.StripePriceID) == "" {
		return nil, httperr.ErrBusinessDetail("plan_not_purchasable", req.Plan.Code)
	}

	businessID := strconv.FormatUint(uint64(req.BusinessID), 10)
	metadata := map[string]string{
		"business_id": businessID,
		"plan":        req.Plan.Code,
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(externalReference(req.BusinessID, req.Plan.Code)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.Plan.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: metadata,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) CreatePortalSession(ctx context.Context, req PortalRequest) (string, error) {
	if req.CustomerRef == "" {
		return "", httperr.ErrBusiness("subscription_not_found")
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(req.CustomerRef),
		ReturnURL: stripe.String(req.ReturnURL),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

func (g *StripeGateway) ParseWebhook(_ context.Context, body []byte, header http.Header) (*WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, httperr.ErrBusiness("gateway_unconfigured")
	}

	sig := header.Get("Stripe-Signature")
	if strings.TrimSpace(sig) == "" {
		return nil, httperr.ErrBusiness("invalid_signature")
	}

	evt, err := webhook.ConstructEventWithTolerance(body, sig, g.webhookSecret, g.tolerance)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_signature")
	}

	out, err := mapStripeEvent(evt)
	if err != nil {
		return nil, err
	}
	out.Payload = body
	return out, nil
}

// mapStripeEvent reduces checkout and subscription events to activations and cancellations.
func mapStripeEvent(evt stripe.Event) (*WebhookEvent, error) {
	out := &WebhookEvent{
		Provider: ProviderStripe,
		ID:       evt.ID,
		Type:     string(evt.Type),
		Kind:     EventIgnored,
	}
	if evt.Data == nil {
		return out, nil
	}

	switch out.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
			return nil, httperr.ErrBusinessDetail("invalid_payload", err.Error())
		}
		out.BusinessID = parseBusinessID(session.Metadata["business_id"])
		out.Plan = strings.ToLower(strings.TrimSpace(session.Metadata["plan"]))
		if session.Customer != nil {
			out.CustomerRef = session.Customer.ID
		}
		if session.Subscription != nil {
			out.SubscriptionRef = session.Subscription.ID
		}
		out.Status = string(stripe.SubscriptionStatusActive)
		out.Kind = EventActivated

	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return nil, httperr.ErrBusinessDetail("invalid_payload", err.Error())
		}
		out.BusinessID = parseBusinessID(sub.Metadata["business_id"])
		out.Plan = strings.ToLower(strings.TrimSpace(sub.Metadata["plan"]))
		out.SubscriptionRef = sub.ID
		out.Status = string(sub.Status)
		if sub.Customer != nil {
			out.CustomerRef = sub.Customer.ID
		}
		if sub.CurrentPeriodEnd > 0 {
			t := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
			out.CurrentPeriodEnd = &t
		}

		switch {
		case out.Type == "customer.subscription.deleted":
			out.Kind = EventCanceled
		case sub.Status == stripe.SubscriptionStatusActive || sub.Status == stripe.SubscriptionStatusTrialing:
			out.Kind = EventActivated
		case sub.Status == stripe.SubscriptionStatusCanceled || sub.Status == stripe.SubscriptionStatusUnpaid:
			out.Kind = EventCanceled
		}
	}

	if out.Kind != EventIgnored && out.BusinessID == 0 {
		out.Kind = EventIgnored
	}
	return out, nil
}
