package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/billing"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

var errDuplicateEvent = errors.New("payment event already recorded")

func (r *BillingGormRepository) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "business_not_found")
	}
	return &b, nil
}

func (r *BillingGormRepository) GetSubscription(ctx context.Context, businessID uint) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BillingGormRepository) RecordPaymentEvent(
	ctx context.Context,
	ev *models.PaymentEvent,
	sub *models.Subscription,
	businessPlan string,
) (bool, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return errDuplicateEvent
			}
			return err
		}

		if sub == nil {
			return nil
		}

		if err := tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "business_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"provider", "customer_ref", "subscription_ref", "plan", "status", "current_period_end", "updated_at",
				}),
			}).
			Create(sub).Error; err != nil {
			return err
		}

		return tx.Model(&models.Business{}).
			Where("id = ?", sub.BusinessID).
			Update("plan", businessPlan).Error
	})

	if errors.Is(err, errDuplicateEvent) {
		return true, nil
	}
	return false, err
}

var _ domain.Repository = (*BillingGormRepository)(nil)
