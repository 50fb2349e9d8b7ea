package billing

import (
	"context"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type Repository interface {
	GetBusinessByID(ctx context.Context, id uint) (*models.Business, error)

	// GetSubscription returns nil without error when the business never subscribed.
	GetSubscription(ctx context.Context, businessID uint) (*models.Subscription, error)

	// RecordPaymentEvent stores a webhook event once and, when sub is set, applies
	// it and the business plan in the same transaction. A replay reports duplicate
	// and changes nothing.
	RecordPaymentEvent(
		ctx context.Context,
		ev *models.PaymentEvent,
		sub *models.Subscription,
		businessPlan string,
	) (duplicate bool, err error)
}
