package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound maps gorm's missing record to a business code.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "business_not_found")
	}
	return &b, nil
}

// --------------------------------------------------
// Employee / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEmployee(
	ctx context.Context,
	businessID uint,
	employeeID uint,
) (*models.Employee, error) {

	var e models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ? AND active = true", employeeID, businessID).
		First(&e).Error; err != nil {
		return nil, notFound(err, "employee_not_found")
	}
	return &e, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ? AND active = true", serviceID, businessID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &s, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSchedule(
	ctx context.Context,
	businessID uint,
	employeeID *uint,
) ([]models.ScheduleDay, error) {
	return listScheduleDays(r.db.WithContext(ctx), businessID, employeeID)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	check domain.ConflictCheck,
) error {
	return r.withEmployeeLock(ctx, ap, check, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	check domain.ConflictCheck,
) error {
	return r.withEmployeeLock(ctx, ap, check, func(tx *gorm.DB) error {
		return tx.Model(&models.Appointment{}).
			Where("id = ? AND business_id = ?", ap.ID, ap.BusinessID).
			Updates(map[string]any{
				"employee_id":      ap.EmployeeID,
				"date":             ap.Date,
				"duration_minutes": ap.DurationMinutes,
				"updated_at":       time.Now(),
			}).Error
	})
}

// withEmployeeLock serializes bookings of one employee with a transaction
// scoped advisory lock, so check sees every committed booking.
func (r *AppointmentGormRepository) withEmployeeLock(
	ctx context.Context,
	ap *models.Appointment,
	check domain.ConflictCheck,
	write func(tx *gorm.DB) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", employeeLockSpace, int32(ap.EmployeeID)).Error; err != nil {
			return err
		}

		existing, err := activeOverlapping(tx, ap.EmployeeID, ap.Date, ap.End())
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(existing); err != nil {
				return err
			}
		}

		return write(tx)
	})
}

const employeeLockSpace int32 = 4201

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Employee").
		Where("id = ? AND business_id = ?", appointmentID, businessID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}

	return &ap, nil
}

// UpdateStatus writes only the status columns, and only while the row still has
// status from. A row changed in between answers invalid_transition.
func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND business_id = ? AND status = ?", ap.ID, ap.BusinessID, string(from)).
		Updates(statusColumns(ap, time.Now()))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func statusColumns(ap *models.Appointment, now time.Time) map[string]any {
	return map[string]any{
		"status":       ap.Status,
		"confirmed_at": ap.ConfirmedAt,
		"cancelled_at": ap.CancelledAt,
		"completed_at": ap.CompletedAt,
		"no_show_at":   ap.NoShowAt,
		"updated_at":   now,
	}
}

func (r *AppointmentGormRepository) ListForBusiness(
	ctx context.Context,
	businessID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Employee").
		Where("business_id = ?", businessID).
		Order("date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListActiveForEmployee(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	return activeOverlapping(r.db.WithContext(ctx), employeeID, start, end)
}

func activeOverlapping(db *gorm.DB, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := db.
		Where(
			"employee_id = ? AND status IN ? AND date < ? AND date + (duration_minutes * interval '1 minute') > ?",
			employeeID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			end,
			start,
		).
		Order("date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) CountForPeriod(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("business_id = ? AND date >= ? AND date < ? AND status <> ?", businessID, start, end, string(domain.StatusCancelled)).
		Count(&count).Error

	return count, err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
