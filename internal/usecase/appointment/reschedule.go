package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/notification"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

type RescheduleInput struct {
	BusinessID    uint
	AppointmentID uint
	Date          string
	Time          string

	// EmployeeID moves the booking to another employee when set.
	EmployeeID *uint
	UserID     *uint
}

type RescheduleAppointment struct {
	repo   domain.Repository
	events *Events
	now    func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	events *Events,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BusinessID, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.Status(ap.Status).IsActive() {
		return nil, httperr.ErrBusinessDetail("invalid_transition", ap.Status+" -> rescheduled")
	}

	start, err := timezone.ParseDateTime(biz.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if start.Before(uc.now().In(start.Location()).Add(minAdvance(biz))) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	previousEmployee := ap.EmployeeID
	if in.EmployeeID != nil && *in.EmployeeID != ap.EmployeeID {
		employee, err := uc.repo.GetEmployee(ctx, in.BusinessID, *in.EmployeeID)
		if err != nil {
			return nil, err
		}
		ap.EmployeeID = employee.ID
		ap.Employee = *employee
	}

	sched, err := resolveSchedule(ctx, uc.repo, in.BusinessID, ap.EmployeeID)
	if err != nil {
		return nil, err
	}

	iv := interval(start, ap.DurationMinutes)
	if !schedule.Fits(sched, iv) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	previous := map[string]any{
		"previous_date":        ap.Date.UTC().Format(time.RFC3339),
		"previous_employee_id": previousEmployee,
	}

	ap.Date = iv.Start
	if err := uc.repo.RescheduleAppointment(ctx, ap, func(existing []models.Appointment) error {
		return domain.AssertNoConflict(ap, existing)
	}); err != nil {
		return nil, err
	}

	uc.events.emit(ctx, notification.KindRescheduled, biz, ap, "", in.UserID, previous)

	return ap, nil
}
