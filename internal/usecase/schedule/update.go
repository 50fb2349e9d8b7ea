package schedule

import (
	"context"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
)

type UpdateScheduleInput struct {
	BusinessID uint
	EmployeeID *uint
	UserID     *uint
	Days       domain.WeeklySchedule
}

type UpdateSchedule struct {
	repo  domain.Repository
	cache domain.Cache
	audit *audit.Dispatcher
}

func NewUpdateSchedule(
	repo domain.Repository,
	cache domain.Cache,
	audit *audit.Dispatcher,
) *UpdateSchedule {
	return &UpdateSchedule{repo: repo, cache: cache, audit: audit}
}

// Execute validates and replaces a whole weekly schedule. An employee schedule
// with no enabled day is stored empty so the employee falls back to the business.
func (uc *UpdateSchedule) Execute(
	ctx context.Context,
	in UpdateScheduleInput,
) (*ScheduleView, error) {

	if err := domain.Validate(in.Days); err != nil {
		return nil, err
	}

	if in.EmployeeID != nil {
		ok, err := uc.repo.EmployeeExists(ctx, in.BusinessID, *in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("invalid_schedule_owner")
		}
	}

	days := domain.ToDays(in.Days, in.BusinessID, in.EmployeeID)
	if in.EmployeeID != nil && !anyEnabled(in.Days) {
		days = nil
	}

	if err := uc.repo.ReplaceSchedule(ctx, in.BusinessID, in.EmployeeID, days); err != nil {
		return nil, err
	}

	if in.EmployeeID == nil && uc.cache != nil {
		uc.cache.Invalidate(ctx, in.BusinessID)
	}

	if uc.audit != nil {
		meta := map[string]any{}
		if in.EmployeeID != nil {
			meta["employee_id"] = *in.EmployeeID
		}
		uc.audit.Dispatch(audit.Event{
			BusinessID: in.BusinessID,
			UserID:     in.UserID,
			Action:     "schedule.updated",
			Entity:     "schedule",
			EntityID:   in.EmployeeID,
			Metadata:   meta,
		})
	}

	return NewGetSchedule(uc.repo).Execute(ctx, in.BusinessID, in.EmployeeID)
}

func anyEnabled(s domain.WeeklySchedule) bool {
	for _, d := range s {
		if d.Enabled {
			return true
		}
	}
	return false
}
