package billing

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/billing"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/payment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timeout"
)

// URLs are the front-end pages the providers redirect back to.
type URLs struct {
	Success string
	Cancel  string
	Return  string
}

type CheckoutInput struct {
	BusinessID uint
	Plan       string
	Email      string
}

type StartCheckout struct {
	repo    domain.Repository
	catalog *plans.Catalog
	gateway payment.Gateway
	urls    URLs
	timeout time.Duration
}

// NewStartCheckout takes the configured provider; gateway may be nil.
func NewStartCheckout(
	repo domain.Repository,
	catalog *plans.Catalog,
	gateway payment.Gateway,
	urls URLs,
	timeout time.Duration,
) *StartCheckout {
	return &StartCheckout{
		repo:    repo,
		catalog: catalog,
		gateway: gateway,
		urls:    urls,
		timeout: timeout,
	}
}

func (uc *StartCheckout) Execute(ctx context.Context, in CheckoutInput) (*payment.CheckoutSession, error) {
	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("gateway_unconfigured")
	}

	plan, err := uc.catalog.Get(in.Plan)
	if err != nil {
		return nil, err
	}
	if plan.Price <= 0 {
		return nil, httperr.ErrBusinessDetail("plan_not_purchasable", plan.Code)
	}

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	email := in.Email
	if email == "" {
		email = biz.Email
	}

	return timeout.Do(ctx, uc.timeout, func(ctx context.Context) (*payment.CheckoutSession, error) {
		return uc.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
			BusinessID: biz.ID,
			Email:      email,
			Plan:       plan,
			SuccessURL: uc.urls.Success,
			CancelURL:  uc.urls.Cancel,
		})
	})
}
