package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

// --------------------------------------------------
// Outbox
// --------------------------------------------------

func (r *NotificationGormRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// FetchUnpublished returns the oldest pending rows. One publisher runs per deployment.
func (r *NotificationGormRepository) FetchUnpublished(ctx context.Context, limit int) ([]models.Notification, error) {
	var out []models.Notification
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationGormRepository) MarkPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id IN ?", ids).
		Update("published_at", at).Error
}

func (r *NotificationGormRepository) ListForAppointment(ctx context.Context, businessID, appointmentID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND appointment_id = ?", businessID, appointmentID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Push tokens
// --------------------------------------------------

func (r *NotificationGormRepository) UpsertPushToken(ctx context.Context, t *models.PushToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"business_id", "user_id", "platform", "updated_at"}),
		}).
		Create(t).Error
}

func (r *NotificationGormRepository) DeletePushToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.PushToken{}).Error
}

func (r *NotificationGormRepository) PushTokensForUser(ctx context.Context, businessID, userID uint) ([]models.PushToken, error) {
	var out []models.PushToken
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		Find(&out).Error
	return out, err
}
