package customer

import (
	"context"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type Repository interface {
	// FindByContact returns the customers of a business matching phone or email.
	FindByContact(
		ctx context.Context,
		businessID uint,
		phone string,
		email string,
	) ([]models.Customer, error)

	Create(
		ctx context.Context,
		c *models.Customer,
	) error

	Get(
		ctx context.Context,
		businessID uint,
		customerID uint,
	) (*models.Customer, error)

	Search(
		ctx context.Context,
		businessID uint,
		query string,
	) ([]models.Customer, error)
}
