package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/dto"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

type AvailabilityInput struct {
	BusinessID uint
	EmployeeID uint
	ServiceID  uint
	Date       string
}

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// Execute lists the free start times of one employee on one day for a service.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]dto.TimeSlotDTO, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(biz.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if in.EmployeeID == 0 {
		return nil, httperr.ErrBusiness("employee_required")
	}

	service, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	employee, err := uc.repo.GetEmployee(ctx, in.BusinessID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	sched, err := resolveSchedule(ctx, uc.repo, in.BusinessID, employee.ID)
	if err != nil {
		return nil, err
	}

	window, open := schedule.Window(sched, date)
	if !open {
		return []dto.TimeSlotDTO{}, nil
	}

	booked, err := uc.repo.ListActiveForEmployee(ctx, employee.ID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute
	step := time.Duration(biz.SlotStepMinutes) * time.Minute
	earliest := uc.now().In(date.Location()).Add(minAdvance(biz))

	slots := schedule.AvailableSlots(window, duration, step, domain.BusyIntervals(employee.ID, booked), earliest)

	out := make([]dto.TimeSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.TimeSlotDTO{
			Start: s.Start.Format("15:04"),
			End:   s.End.Format("15:04"),
		})
	}
	return out, nil
}
