package business

import (
	"context"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// ServiceFilter narrows the service list. Zero values disable a criterion.
type ServiceFilter struct {
	Category string
	Query    string
	Active   *bool
}

type Repository interface {
	// -------- Business --------
	GetBusinessByID(ctx context.Context, id uint) (*models.Business, error)
	GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error)
	UpdateBusiness(ctx context.Context, b *models.Business) error

	// -------- Employees --------
	ListEmployees(ctx context.Context, businessID uint, activeOnly bool) ([]models.Employee, error)

	// GetEmployee returns the employee whether active or not.
	GetEmployee(ctx context.Context, businessID, employeeID uint) (*models.Employee, error)
	CountActiveEmployees(ctx context.Context, businessID uint) (int64, error)
	SaveEmployee(ctx context.Context, e *models.Employee) error

	// -------- Services --------
	ListServices(ctx context.Context, businessID uint, f ServiceFilter) ([]models.Service, error)
	GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error)
	SaveService(ctx context.Context, s *models.Service) error
}
