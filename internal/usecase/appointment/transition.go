package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/notification"
)

type TransitionInput struct {
	BusinessID    uint
	AppointmentID uint
	Status        string
	UserID        *uint
}

// TransitionAppointment confirms, cancels, completes or marks a no-show.
type TransitionAppointment struct {
	repo   domain.Repository
	events *Events
	now    func() time.Time
}

func NewTransitionAppointment(
	repo domain.Repository,
	events *Events,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BusinessID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	from, err := domain.Transition(ap, to, uc.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	uc.events.emit(ctx, notification.KindFor(string(to)), biz, ap, string(from), in.UserID, nil)

	return ap, nil
}
