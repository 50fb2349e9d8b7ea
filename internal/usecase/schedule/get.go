package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
)

// ScheduleView is a weekly schedule as shown to the owner. Inherited is set
// when an employee has no schedule of their own.
type ScheduleView struct {
	EmployeeID *uint                 `json:"employee_id,omitempty"`
	Inherited  bool                  `json:"inherited"`
	Days       domain.WeeklySchedule `json:"days"`
}

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

// Execute returns the business schedule, or the employee's when employeeID is set.
func (uc *GetSchedule) Execute(
	ctx context.Context,
	businessID uint,
	employeeID *uint,
) (*ScheduleView, error) {

	if employeeID != nil {
		ok, err := uc.repo.EmployeeExists(ctx, businessID, *employeeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("employee_not_found")
		}
	}

	days, err := uc.repo.GetSchedule(ctx, businessID, employeeID)
	if err != nil {
		return nil, err
	}
	view := &ScheduleView{EmployeeID: employeeID, Days: domain.FromDays(days)}

	if employeeID != nil && view.Days.IsEmpty() {
		business, err := uc.repo.GetSchedule(ctx, businessID, nil)
		if err != nil {
			return nil, err
		}
		view.Days = domain.FromDays(business)
		view.Inherited = true
	}

	return view, nil
}
