package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
)

// MercadoPago has no recurring checkout here: an approved payment buys one period.
const mercadoPagoPeriod = 30 * 24 * time.Hour

type MercadoPagoConfig struct {
	AccessToken     string
	WebhookSecret   string
	NotificationURL string
}

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentLookup interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type MercadoPagoGateway struct {
	preferences     preferenceCreator
	payments        paymentLookup
	webhookSecret   string
	notificationURL string
	now             func() time.Time
}

func NewMercadoPagoGateway(cfg MercadoPagoConfig) (*MercadoPagoGateway, error) {
	mpCfg, err := config.New(strings.TrimSpace(cfg.AccessToken))
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		preferences:     preference.NewClient(mpCfg),
		payments:        payment.NewClient(mpCfg),
		webhookSecret:   strings.TrimSpace(cfg.WebhookSecret),
		notificationURL: cfg.NotificationURL,
		now:             time.Now,
	}, nil
}

var _ Gateway = (*MercadoPagoGateway)(nil)

func (g *MercadoPagoGateway) Name() string { return ProviderMercadoPago }

func (g *MercadoPagoGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if req.Plan.Price <= 0 {
		return nil, httperr.ErrBusinessDetail("plan_not_purchasable", req.Plan.Code)
	}

	currency := req.Plan.Currency
	if currency == "" {
		currency = "BRL"
	}

	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Plan.Name,
				Quantity:   1,
				UnitPrice:  req.Plan.Price,
				CurrencyID: currency,
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.CancelURL,
			Pending: req.SuccessURL,
		},
		ExternalReference: externalReference(req.BusinessID, req.Plan.Code),
		NotificationURL:   g.notificationURL,
	}

	res, err := g.preferences.Create(ctx, request)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: res.ID, URL: res.InitPoint}, nil
}

func (g *MercadoPagoGateway) CreatePortalSession(context.Context, PortalRequest) (string, error) {
	return "", httperr.ErrBusiness("portal_unsupported")
}

type mercadoPagoNotification struct {
	ID     json.Number `json:"id"`
	Type   string      `json:"type"`
	Action string      `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (g *MercadoPagoGateway) ParseWebhook(ctx context.Context, body []byte, header http.Header) (*WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, httperr.ErrBusiness("gateway_unconfigured")
	}

	var n mercadoPagoNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, httperr.ErrBusinessDetail("invalid_payload", err.Error())
	}

	if !VerifyMercadoPagoSignature(g.webhookSecret, header.Get("x-signature"), header.Get("x-request-id"), n.Data.ID) {
		return nil, httperr.ErrBusiness("invalid_signature")
	}

	out := &WebhookEvent{
		Provider: ProviderMercadoPago,
		ID:       n.ID.String(),
		Type:     n.Type,
		Kind:     EventIgnored,
		Payload:  body,
	}
	if n.Type != "payment" {
		return out, nil
	}

	paymentID, err := strconv.Atoi(n.Data.ID)
	if err != nil {
		return nil, httperr.ErrBusinessDetail("invalid_payload", "data.id")
	}

	p, err := g.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Each status change of a payment is a distinct event.
	out.ID = fmt.Sprintf("payment:%d:%s", paymentID, p.Status)
	out.Status = p.Status
	out.SubscriptionRef = strconv.Itoa(paymentID)

	businessID, plan, ok := parseExternalReference(p.ExternalReference)
	if !ok {
		return out, nil
	}
	out.BusinessID = businessID
	out.Plan = plan

	switch p.Status {
	case "approved":
		end := g.now().UTC().Add(mercadoPagoPeriod)
		out.CurrentPeriodEnd = &end
		out.Kind = EventActivated
	case "refunded", "charged_back", "cancelled":
		out.Kind = EventCanceled
	}
	return out, nil
}

// VerifyMercadoPagoSignature checks the "ts=...,v1=..." header against the
// HMAC-SHA256 of the manifest "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func VerifyMercadoPagoSignature(secret, signature, requestID, dataID string) bool {
	var ts, v1 string
	for _, part := range strings.Split(signature, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := mercadoPagoManifest(dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(v1)))
}

func mercadoPagoManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	b.WriteString("ts:" + ts + ";")
	return b.String()
}
