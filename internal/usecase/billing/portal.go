package billing

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/billing"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/payment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timeout"
)

// OpenPortal returns the self-service page of the provider holding the
// business subscription.
type OpenPortal struct {
	repo     domain.Repository
	gateways map[string]payment.Gateway
	urls     URLs
	timeout  time.Duration
}

func NewOpenPortal(
	repo domain.Repository,
	gateways map[string]payment.Gateway,
	urls URLs,
	timeout time.Duration,
) *OpenPortal {
	return &OpenPortal{repo: repo, gateways: gateways, urls: urls, timeout: timeout}
}

func (uc *OpenPortal) Execute(ctx context.Context, businessID uint) (string, error) {
	sub, err := uc.repo.GetSubscription(ctx, businessID)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return "", httperr.ErrBusiness("subscription_not_found")
	}

	gw, ok := uc.gateways[sub.Provider]
	if !ok || gw == nil {
		return "", httperr.ErrBusinessDetail("gateway_unconfigured", sub.Provider)
	}

	return timeout.Do(ctx, uc.timeout, func(ctx context.Context) (string, error) {
		return gw.CreatePortalSession(ctx, payment.PortalRequest{
			CustomerRef: sub.CustomerRef,
			ReturnURL:   uc.urls.Return,
		})
	})
}
