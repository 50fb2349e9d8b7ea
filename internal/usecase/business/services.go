package business

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/business"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type ServiceInput struct {
	BusinessID uint
	ServiceID  uint
	UserID     *uint

	Name        *string
	Description *string
	DurationMin *int
	Price       *float64
	Category    *string
	Active      *bool
}

type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context, businessID uint, f domain.ServiceFilter) ([]models.Service, error) {
	f.Category = domain.NormalizeCategory(f.Category)
	return uc.repo.ListServices(ctx, businessID, f)
}

// SaveService creates (ServiceID 0) or updates a bookable service.
type SaveService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveService(repo domain.Repository, audit *audit.Dispatcher) *SaveService {
	return &SaveService{repo: repo, audit: audit}
}

func (uc *SaveService) Execute(ctx context.Context, in ServiceInput) (*models.Service, error) {
	s := &models.Service{BusinessID: in.BusinessID, Active: true}
	if in.ServiceID != 0 {
		var err error
		if s, err = uc.repo.GetService(ctx, in.BusinessID, in.ServiceID); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMin != nil {
		s.DurationMin = *in.DurationMin
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.Category != nil {
		s.Category = domain.NormalizeCategory(*in.Category)
	}
	if in.Active != nil {
		s.Active = *in.Active
	}

	if err := domain.ValidateService(s); err != nil {
		return nil, err
	}

	created := s.ID == 0
	if err := uc.repo.SaveService(ctx, s); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		action := "service.updated"
		if created {
			action = "service.created"
		}
		uc.audit.Dispatch(audit.Event{
			BusinessID: in.BusinessID,
			UserID:     in.UserID,
			Action:     action,
			Entity:     "service",
			EntityID:   &s.ID,
			Metadata:   map[string]any{"active": s.Active, "duration_min": s.DurationMin},
		})
	}

	return s, nil
}
