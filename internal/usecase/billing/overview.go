package billing

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/billing"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
)

type Overview struct {
	Plan         plans.Plan           `json:"plan"`
	Subscription *models.Subscription `json:"subscription"`
	Available    []plans.Plan         `json:"available"`
}

type GetOverview struct {
	repo    domain.Repository
	catalog *plans.Catalog
}

func NewGetOverview(repo domain.Repository, catalog *plans.Catalog) *GetOverview {
	return &GetOverview{repo: repo, catalog: catalog}
}

func (uc *GetOverview) Execute(ctx context.Context, businessID uint) (*Overview, error) {
	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	sub, err := uc.repo.GetSubscription(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Plan:         uc.catalog.For(biz.Plan),
		Subscription: sub,
		Available:    uc.catalog.Plans,
	}, nil
}
