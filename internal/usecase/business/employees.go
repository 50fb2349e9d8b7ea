package business

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/business"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
)

type EmployeeInput struct {
	BusinessID uint
	EmployeeID uint
	UserID     *uint

	// LoginUserID links the employee to an identity provider account.
	LoginUserID *uint
	Name        *string
	Email       *string
	Phone       *string
	Active      *bool
}

type ListEmployees struct {
	repo domain.Repository
}

func NewListEmployees(repo domain.Repository) *ListEmployees {
	return &ListEmployees{repo: repo}
}

func (uc *ListEmployees) Execute(ctx context.Context, businessID uint, activeOnly bool) ([]models.Employee, error) {
	return uc.repo.ListEmployees(ctx, businessID, activeOnly)
}

// SaveEmployee creates (EmployeeID 0) or updates an employee. Adding or
// reactivating an employee respects the plan's max_employees.
type SaveEmployee struct {
	repo    domain.Repository
	catalog *plans.Catalog
	audit   *audit.Dispatcher
}

func NewSaveEmployee(
	repo domain.Repository,
	catalog *plans.Catalog,
	audit *audit.Dispatcher,
) *SaveEmployee {
	return &SaveEmployee{repo: repo, catalog: catalog, audit: audit}
}

func (uc *SaveEmployee) Execute(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	e := &models.Employee{BusinessID: biz.ID, Active: true}
	wasActive := false
	if in.EmployeeID != 0 {
		e, err = uc.repo.GetEmployee(ctx, biz.ID, in.EmployeeID)
		if err != nil {
			return nil, err
		}
		wasActive = e.Active
	}

	if in.Name != nil {
		e.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		e.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Active != nil {
		e.Active = *in.Active
	}
	if in.LoginUserID != nil {
		e.UserID = in.LoginUserID
	}

	if err := domain.ValidateEmployee(e); err != nil {
		return nil, err
	}

	if e.Active && !wasActive {
		count, err := uc.repo.CountActiveEmployees(ctx, biz.ID)
		if err != nil {
			return nil, err
		}
		if !uc.catalog.For(biz.Plan).AllowsEmployees(count) {
			return nil, httperr.ErrBusinessDetail("plan_limit_reached", "max_employees")
		}
	}

	created := e.ID == 0
	if err := uc.repo.SaveEmployee(ctx, e); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		action := "employee.updated"
		if created {
			action = "employee.created"
		}
		uc.audit.Dispatch(audit.Event{
			BusinessID: biz.ID,
			UserID:     in.UserID,
			Action:     action,
			Entity:     "employee",
			EntityID:   &e.ID,
			Metadata:   map[string]any{"active": e.Active},
		})
	}

	return e, nil
}
