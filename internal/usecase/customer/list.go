package customer

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/customer"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type ListCustomers struct {
	repo domain.Repository
}

func NewListCustomers(repo domain.Repository) *ListCustomers {
	return &ListCustomers{repo: repo}
}

// Execute searches name, phone and email; an empty query lists everyone.
func (uc *ListCustomers) Execute(
	ctx context.Context,
	businessID uint,
	query string,
) ([]models.Customer, error) {
	return uc.repo.Search(ctx, businessID, query)
}

type GetCustomer struct {
	repo domain.Repository
}

func NewGetCustomer(repo domain.Repository) *GetCustomer {
	return &GetCustomer{repo: repo}
}

func (uc *GetCustomer) Execute(ctx context.Context, businessID, customerID uint) (*models.Customer, error) {
	return uc.repo.Get(ctx, businessID, customerID)
}
