package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func listScheduleDays(db *gorm.DB, businessID uint, employeeID *uint) ([]models.ScheduleDay, error) {
	q := db.Where("business_id = ?", businessID)
	if employeeID == nil {
		q = q.Where("employee_id IS NULL")
	} else {
		q = q.Where("employee_id = ?", *employeeID)
	}

	var days []models.ScheduleDay
	if err := q.Order("id ASC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *ScheduleGormRepository) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "business_not_found")
	}
	return &b, nil
}

func (r *ScheduleGormRepository) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error; err != nil {
		return nil, notFound(err, "business_not_found")
	}
	return &b, nil
}

func (r *ScheduleGormRepository) EmployeeExists(ctx context.Context, businessID, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ? AND business_id = ?", employeeID, businessID).
		Count(&count).Error
	return count > 0, err
}

func (r *ScheduleGormRepository) GetSchedule(
	ctx context.Context,
	businessID uint,
	employeeID *uint,
) ([]models.ScheduleDay, error) {
	return listScheduleDays(r.db.WithContext(ctx), businessID, employeeID)
}

// ReplaceSchedule deletes the owner's days and recreates them in one transaction.
func (r *ScheduleGormRepository) ReplaceSchedule(
	ctx context.Context,
	businessID uint,
	employeeID *uint,
	days []models.ScheduleDay,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("business_id = ?", businessID)
		if employeeID == nil {
			q = q.Where("employee_id IS NULL")
		} else {
			q = q.Where("employee_id = ?", *employeeID)
		}
		if err := q.Delete(&models.ScheduleDay{}).Error; err != nil {
			return err
		}

		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

var _ domain.Repository = (*ScheduleGormRepository)(nil)
