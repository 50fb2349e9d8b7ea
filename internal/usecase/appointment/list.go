package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/dto"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

// ListAppointmentsInput carries raw query values. Dates are YYYY-MM-DD in the
// business timezone; To is exclusive.
type ListAppointmentsInput struct {
	BusinessID uint
	From       string
	To         string
	EmployeeID uint
	CustomerID uint
	Status     string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	f, err := buildFilter(biz.Timezone, in)
	if err != nil {
		return nil, err
	}

	all, err := uc.repo.ListForBusiness(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)
	matched := f.Apply(all)

	out := make([]dto.AppointmentListDTO, 0, len(matched))
	for i := range matched {
		out = append(out, dto.FromAppointment(&matched[i], loc))
	}
	return out, nil
}

func buildFilter(tz string, in ListAppointmentsInput) (domain.Filter, error) {
	f := domain.Filter{
		EmployeeID: in.EmployeeID,
		CustomerID: in.CustomerID,
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return f, err
		}
		f.Status = st
	}

	var err error
	if f.From, err = parseOptionalDate(tz, in.From); err != nil {
		return f, err
	}
	if f.To, err = parseOptionalDate(tz, in.To); err != nil {
		return f, err
	}
	return f, nil
}

func parseOptionalDate(tz, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := timezone.ParseDate(tz, s)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return t, nil
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, businessID, appointmentID)
}
