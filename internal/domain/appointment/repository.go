package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// ConflictCheck receives the active appointments of the employee overlapping
// the candidate and rejects the write by returning an error.
type ConflictCheck func(existing []models.Appointment) error

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	// -------- Employee / Service --------
	GetEmployee(
		ctx context.Context,
		businessID uint,
		employeeID uint,
	) (*models.Employee, error)

	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Schedule --------
	GetSchedule(
		ctx context.Context,
		businessID uint,
		employeeID *uint,
	) ([]models.ScheduleDay, error)

	// -------- Appointment --------

	// CreateAppointment runs check and the insert under a per-employee lock.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		check ConflictCheck,
	) error

	// RescheduleAppointment is CreateAppointment for an existing row.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		check ConflictCheck,
	) error

	GetAppointment(
		ctx context.Context,
		businessID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// UpdateStatus persists a transition made from status from; other columns
	// are left as stored.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// ListForBusiness is the broad fetch; narrowing happens with Filter.
	ListForBusiness(
		ctx context.Context,
		businessID uint,
	) ([]models.Appointment, error)

	ListActiveForEmployee(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// CountForPeriod counts non-cancelled bookings starting in [start, end).
	CountForPeriod(
		ctx context.Context,
		businessID uint,
		start time.Time,
		end time.Time,
	) (int64, error)
}
