package schedule

import (
	"context"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type Repository interface {
	GetBusinessByID(ctx context.Context, id uint) (*models.Business, error)
	GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error)
	EmployeeExists(ctx context.Context, businessID, employeeID uint) (bool, error)

	// GetSchedule returns the days of the business schedule (employeeID nil)
	// or of one employee.
	GetSchedule(ctx context.Context, businessID uint, employeeID *uint) ([]models.ScheduleDay, error)
	ReplaceSchedule(ctx context.Context, businessID uint, employeeID *uint, days []models.ScheduleDay) error
}

// Cache keeps business schedules close to the public badge endpoint.
type Cache interface {
	Get(ctx context.Context, businessID uint) (WeeklySchedule, bool)
	Set(ctx context.Context, businessID uint, s WeeklySchedule)
	Invalidate(ctx context.Context, businessID uint)
}
